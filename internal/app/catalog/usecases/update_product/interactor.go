package update_product

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

// Request replaces every mutable field of an active product.
type Request struct {
	ProductID     int64
	Name          string
	Description   string
	Price         decimal.Decimal
	CategoryID    int64
	StockQuantity int64
}

// Interactor handles the update product use case.
type Interactor struct {
	repo       contracts.ProductRepository
	outboxRepo contracts.OutboxRepository
	committer  committer.Runner
	clock      clock.Clock
}

// NewInteractor creates a new update product interactor.
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

// Execute updates an active product. Missing or inactive products yield
// domain.ErrProductNotFound; createdDate and the active flag never change.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.ProductView, error) {
	// 1. Validate the replacement fields
	fields := domain.ProductFields{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	var view *contracts.ProductView
	err := i.committer.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
		// 2. Guarded update; no row means missing or inactive
		product, err := i.repo.UpdateActive(ctx, txn, req.ProductID, fields)
		if err != nil {
			return nil, err
		}
		product.MarkUpdated(i.clock.Now())

		// 3. Read back the joined row
		view, err = i.repo.View(ctx, txn, product.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to read updated product: %w", err)
		}

		// 4. Outbox events
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
		return nil, fmt.Errorf("failed to update product: %w", err)
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
