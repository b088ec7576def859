package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Category groups products. Categories are always created active and this
// service exposes no way to retire one.
type Category struct {
	id          int64
	name        string
	description string
	active      bool

	events []DomainEvent
}

// NewCategory validates and creates a new, not yet persisted, category.
func NewCategory(name, description string) (*Category, error) {
	var errs []error
	if err := validateName(name); err != nil {
		errs = append(errs, fieldErr("name", err))
	}
	switch {
	case strings.TrimSpace(description) == "":
		errs = append(errs, fieldErr("description", ErrEmptyCategoryDescription))
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		errs = append(errs, fieldErr("description", ErrDescriptionTooLong))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Category{
		name:        name,
		description: description,
		active:      true,
		events:      make([]DomainEvent, 0),
	}, nil
}

// ReconstructCategory reconstitutes a Category from the store.
func ReconstructCategory(id int64, name, description string, active bool) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		active:      active,
		events:      make([]DomainEvent, 0),
	}
}

func (c *Category) ID() int64                   { return c.id }
func (c *Category) Name() string                { return c.name }
func (c *Category) Description() string         { return c.description }
func (c *Category) IsActive() bool              { return c.active }
func (c *Category) DomainEvents() []DomainEvent { return c.events }

// AssignID records the store-assigned identity and emits the creation event.
func (c *Category) AssignID(id int64) {
	c.id = id
	c.events = append(c.events, &CategoryCreatedEvent{
		CategoryID:  id,
		Name:        c.name,
		Description: c.description,
	})
}

// ClearEvents drops recorded events.
func (c *Category) ClearEvents() {
	c.events = make([]DomainEvent, 0)
}
