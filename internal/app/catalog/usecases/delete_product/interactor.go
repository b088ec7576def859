package delete_product

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

// Request identifies the product to retire.
type Request struct {
	ProductID int64
}

// Interactor handles the soft delete use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Runner
	clock      clock.Clock
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	outboxRepo contracts.OutboxRepository,
	committer committer.Runner,
	clock clock.Clock,
) *Interactor {
	return &Interactor{
		repo:       repo,
		outboxRepo: outboxRepo,
		committer:  committer,
		clock:      clock,
	}
}

// Execute marks an active product inactive. The row stays in the store.
// Deleting a missing or already deleted product yields
// domain.ErrProductNotFound.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	err := i.committer.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		product, err := i.repo.SoftDeleteActive(ctx, txn, req.ProductID)
		if err != nil {
			return nil, err
		}
		product.MarkDeleted(i.clock.Now())

		plan := committer.NewPlan()
		for _, event := range product.DomainEvents() {
			payload, err := i.serializeEvent(event)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize event: %w", err)
			}
			plan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, payload)))
		}
		return plan, nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
