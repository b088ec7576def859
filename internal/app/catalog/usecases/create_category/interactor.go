package create_category

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

// Request contains the data needed to create a category.
type Request struct {
	Name        string
	Description string
}

// Interactor handles the create category use case.
type Interactor struct {
	repo       contracts.CategoryRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Runner
}

// NewInteractor creates a new create category interactor.
func NewInteractor(
	repo contracts.CategoryRepository,
	outboxRepo contracts.OutboxRepository,
	committer committer.Runner,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
	}
}

// Execute creates a category.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.CategoryView, error) {
	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	err = i.committer.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		category.ClearEvents()

		id, err := i.repo.Insert(ctx, txn, category)
		if err != nil {
			return nil, err
		}
		category.AssignID(id)

		plan := committer.NewPlan()
		for _, event := range category.DomainEvents() {
			payload, err := i.serializeEvent(event)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize event: %w", err)
			}
			plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
		}
		return plan, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &contracts.CategoryView{
		ID:          category.ID(),
		Name:        category.Name(),
		Description: category.Description(),
	}, nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
