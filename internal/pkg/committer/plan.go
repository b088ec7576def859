// Package committer applies collected Spanner mutations atomically.
//
// Use cases collect mutations from repositories into a CommitPlan instead
// of writing directly. A plan is either applied on its own with Apply, or
// built inside a read-write transaction with Run, which buffers it into that
// transaction so DML statements and mutations commit together:
//
//	err := c.Run(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*committer.CommitPlan, error) {
//	    id, err := repo.Insert(ctx, txn, product)
//	    if err != nil {
//	        return nil, err
//	    }
//	    product.AssignID(id)
//
//	    plan := committer.NewPlan()
//	    for _, event := range product.DomainEvents() {
//	        plan.Add(outboxRepo.InsertMut(outboxRepo.EnrichEvent(event, payload)))
//	    }
//	    return plan, nil
//	})
//
// Spanner may call the function more than once when the transaction aborts,
// so it must not keep state between attempts.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is a typed wrapper around Spanner mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

// NewPlan creates a new empty CommitPlan.
func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add adds a mutation to the plan.
// Nil mutations are silently ignored for convenience.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

// AddMultiple adds multiple mutations to the plan.
func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

// Mutations returns all collected mutations.
func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

// IsEmpty returns true if the plan has no mutations.
func (cp *CommitPlan) IsEmpty() bool {
	return cp == nil || len(cp.mutations) == 0
}

// Count returns the number of mutations in the plan.
func (cp *CommitPlan) Count() int {
	if cp == nil {
		return 0
	}
	return len(cp.mutations)
}

// TxnFunc does the transactional work of one operation and returns the
// mutations to buffer before commit. A nil plan is allowed.
type TxnFunc func(ctx context.Context, txn *spanner.ReadWriteTransaction) (*CommitPlan, error)

// Committer provides transaction execution for CommitPlans.
type Committer struct {
	client *spanner.Client
}

// NewCommitter creates a new Committer.
func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply executes the CommitPlan atomically within a Spanner transaction.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil // Nothing to commit
	}

	_, err := c.client.Apply(ctx, plan.Mutations())
	if err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}

	return nil
}

// Run executes fn in a read-write transaction and buffers the plan it
// returns into the same transaction. Errors returned by fn roll the
// transaction back and are returned with their chain intact.
func (c *Committer) Run(ctx context.Context, fn TxnFunc) error {
	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		plan, err := fn(ctx, txn)
		if err != nil {
			return err
		}
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return nil
}

// Runner runs transactional work. *Committer implements it.
type Runner interface {
	Run(ctx context.Context, fn TxnFunc) error
}

var _ Runner = (*Committer)(nil)
