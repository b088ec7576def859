package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("valid category", func(t *testing.T) {
		c, err := NewCategory("Electronics", "Electronic devices and accessories")
		require.NoError(t, err)
		assert.Equal(t, "Electronics", c.Name())
		assert.True(t, c.IsActive())
		assert.Empty(t, c.DomainEvents())
	})

	t.Run("description is required", func(t *testing.T) {
		_, err := NewCategory("Books", "")
		assert.ErrorIs(t, err, ErrEmptyCategoryDescription)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := NewCategory("", "Physical and digital books")
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("limits", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("n", MaxNameLength+1), strings.Repeat("d", MaxDescriptionLength+1))
		assert.ErrorIs(t, err, ErrNameTooLong)
		assert.ErrorIs(t, err, ErrDescriptionTooLong)
	})
}

func TestCategory_AssignID(t *testing.T) {
	c, err := NewCategory("Sports", "Sports equipment and apparel")
	require.NoError(t, err)

	c.AssignID(5)

	assert.Equal(t, int64(5), c.ID())
	require.Len(t, c.DomainEvents(), 1)
	ev := c.DomainEvents()[0]
	assert.Equal(t, EventCategoryCreated, ev.EventType())
	assert.Equal(t, "5", ev.AggregateID())

	c.ClearEvents()
	assert.Empty(t, c.DomainEvents())
}
