package create_product

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-search-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-search-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-search-service/internal/pkg/clock"
	"github.com/light-bringer/catalog-search-service/internal/pkg/committer"
)

// Request contains the data needed to create a product.
type Request struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    int64
	StockQuantity int64
}

// Interactor handles the create product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Runner
	clock      clock.Clock
}

// NewInteractor creates a new create product interactor.
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

// Execute creates a new product and returns it as stored.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductView, error) {
	// 1. Create domain aggregate (validates every field)
	product, err := domain.NewProduct(domain.ProductFields{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	}, i.clock.Now())
	if err != nil {
		return nil, err
	}

	var view *contracts.ProductView
	err = i.committer.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		// Events from an aborted attempt must not leak into the retry
		product.ClearEvents()

		// 2. Insert; the store assigns the id
		id, err := i.repo.Insert(ctx, txn, product)
		if err != nil {
			return nil, err
		}
		product.AssignID(id)

		// 3. Read back the joined row within the transaction
		view, err = i.repo.View(ctx, txn, id)
		if err != nil {
			return nil, fmt.Errorf("failed to read created product: %w", err)
		}

		// 4. Add outbox events to the same commit
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
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return view, nil
}

// serializeEvent converts a domain event to JSON payload.
func (i *Interactor) serializeEvent(event domain.DomainEvent) (string, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
