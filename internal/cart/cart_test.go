package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	cola  = ItemRef{ItemID: "menu-1", Name: "Cola", UnitPrice: 20}
	pizza = ItemRef{ItemID: "menu-2", Name: "Pizza", UnitPrice: 55}
)

func TestCart_AddLine(t *testing.T) {
	t.Run("Success - New Line", func(t *testing.T) {
		c := New()

		line, err := c.AddLine(cola, 2)

		assert.NoError(t, err)
		assert.NotEmpty(t, line.ID)
		assert.Equal(t, 40.0, line.LineTotal)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, 40.0, c.Total())
	})

	t.Run("Duplicate item produces duplicate line", func(t *testing.T) {
		c := New()

		first, _ := c.AddLine(cola, 1)
		second, _ := c.AddLine(cola, 2)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 2, c.Len())
		assert.Equal(t, 60.0, c.Total())
	})

	t.Run("Error - Non-positive quantity", func(t *testing.T) {
		c := New()

		_, err := c.AddLine(cola, 0)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("Error - Non-positive price", func(t *testing.T) {
		c := New()

		_, err := c.AddLine(ItemRef{ItemID: "menu-x", Name: "Broken"}, 1)

		assert.ErrorIs(t, err, ErrInvalidPrice)
	})
}

func TestCart_UpdateQuantity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c := New()
		line, _ := c.AddLine(cola, 1)

		err := c.UpdateQuantity(line.ID, 3)

		assert.NoError(t, err)
		assert.Equal(t, 60.0, c.Total())
	})

	t.Run("Quantity below one clamps to one", func(t *testing.T) {
		c := New()
		line, _ := c.AddLine(cola, 5)

		err := c.UpdateQuantity(line.ID, 0)

		assert.NoError(t, err)
		assert.Equal(t, 1, c.Lines()[0].Quantity)
		assert.Equal(t, 20.0, c.Total())
	})

	t.Run("Error - Line not found", func(t *testing.T) {
		c := New()

		err := c.UpdateQuantity("missing", 2)

		assert.ErrorIs(t, err, ErrLineNotFound)
	})
}

func TestCart_RemoveLine(t *testing.T) {
	t.Run("Success - Removes exactly one line", func(t *testing.T) {
		c := New()
		first, _ := c.AddLine(cola, 1)
		second, _ := c.AddLine(cola, 2)

		err := c.RemoveLine(first.ID)

		assert.NoError(t, err)
		assert.Equal(t, 1, c.Len())
		assert.Equal(t, second.ID, c.Lines()[0].ID)
	})

	t.Run("Error - Line not found", func(t *testing.T) {
		c := New()
		c.AddLine(cola, 1)

		err := c.RemoveLine("missing")

		assert.ErrorIs(t, err, ErrLineNotFound)
		assert.Equal(t, 1, c.Len())
	})
}

// The total must equal the sum of line totals after every operation in any
// add/remove/update sequence.
func TestCart_TotalInvariant(t *testing.T) {
	c := New()

	sumLines := func() float64 {
		var sum float64
		for _, line := range c.Lines() {
			sum += line.LineTotal
		}
		return sum
	}

	ops := []func(){
		func() { c.AddLine(cola, 2) },
		func() { c.AddLine(pizza, 1) },
		func() { c.AddLine(cola, 3) },
		func() {
			lines := c.Lines()
			c.RemoveLine(lines[0].ID)
		},
		func() {
			lines := c.Lines()
			c.UpdateQuantity(lines[0].ID, 4)
		},
		func() { c.AddLine(pizza, 2) },
		func() {
			lines := c.Lines()
			c.RemoveLine(lines[len(lines)-1].ID)
		},
	}

	for i, op := range ops {
		op()
		assert.Equalf(t, sumLines(), c.Total(), "invariant broken after op %d", i)
	}
}

func TestCart_ClearAndRestore(t *testing.T) {
	c := New()
	c.AddLine(cola, 2)
	c.AddLine(pizza, 2)
	assert.Equal(t, 150.0, c.Total())

	snapshot := c.Snapshot()

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.0, c.Total())

	c.Restore(snapshot)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 150.0, c.Total())
}
