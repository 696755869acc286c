package cart

import "github.com/google/uuid"

// Cart holds the pending, not-yet-submitted lines of the current checkout.
// It is memory-resident only and owned by a single checkout context; a
// process restart loses unsubmitted contents on purpose.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddLine appends a new line for the given item. Adding the same menu item
// twice produces two independent lines; the counter staff frequently rings
// up the same dish for different guests, so lines are never merged by item.
func (c *Cart) AddLine(item ItemRef, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	if item.UnitPrice <= 0 {
		return Line{}, ErrInvalidPrice
	}

	line := Line{
		ID:        uuid.New().String(),
		ItemID:    item.ItemID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		Quantity:  quantity,
		LineTotal: item.UnitPrice * float64(quantity),
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQuantity sets a line's quantity. Values below 1 clamp to 1, matching
// the decrement control on the order screen.
func (c *Cart) UpdateQuantity(lineID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines[i].Quantity = quantity
			c.lines[i].LineTotal = c.lines[i].UnitPrice * float64(quantity)
			return nil
		}
	}
	return ErrLineNotFound
}

// RemoveLine removes exactly one line by id.
func (c *Cart) RemoveLine(lineID string) error {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear empties the cart. Called only after the server has confirmed the
// order, never speculatively.
func (c *Cart) Clear() {
	c.lines = nil
}

// Total recomputes the running total on demand.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.LineTotal
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Snapshot captures the cart for rollback before an optimistic mutation.
func (c *Cart) Snapshot() []Line {
	return c.Lines()
}

// Restore replaces the cart contents with a previously taken snapshot.
func (c *Cart) Restore(snapshot []Line) {
	c.lines = make([]Line, len(snapshot))
	copy(c.lines, snapshot)
}
