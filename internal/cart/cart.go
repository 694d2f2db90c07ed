package cart

import (
	"context"
	"log"
)

// Line is one distinct product the customer intends to order.
// Options carries the chosen variant/add-ons as an opaque JSON-compatible tree.
type Line struct {
	ProductID string                 `json:"product_id" dynamodbav:"product_id"`
	Name      string                 `json:"name" dynamodbav:"name"`
	UnitPrice float64                `json:"price" dynamodbav:"price"`
	Quantity  int                    `json:"quantity" dynamodbav:"quantity"`
	Options   map[string]interface{} `json:"options,omitempty" dynamodbav:"options,omitempty"`
}

// Slot is the durable storage backing a cart across page reloads.
// Save is best-effort: the in-memory cart stays authoritative when it fails.
type Slot interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

// Cart holds the items of a single browsing session. At most one line exists
// per ProductID; adding the same product again accumulates quantity. A Cart
// is owned by one session and is never shared across goroutines.
type Cart struct {
	lines []Line
	slot  Slot
}

// New returns a cart rehydrated from the slot. A failed load starts the
// session with an empty cart rather than surfacing an error to the customer.
func New(ctx context.Context, slot Slot) *Cart {
	c := &Cart{slot: slot}
	lines, err := slot.Load(ctx)
	if err != nil {
		log.Printf("[cart] rehydrate failed, starting empty: %v", err)
		return c
	}
	c.lines = lines
	return c
}

// AddItem merges the incoming line into the cart. When a line with the same
// ProductID exists its quantity grows by the incoming quantity and all other
// fields of the existing line win, including Options; otherwise the line is
// appended unchanged.
func (c *Cart) AddItem(ctx context.Context, line Line) {
	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += line.Quantity
			c.persist(ctx)
			return
		}
	}
	c.lines = append(c.lines, line)
	c.persist(ctx)
}

// RemoveItem deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(ctx context.Context, productID string) {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	c.persist(ctx)
}

// UpdateQuantity sets the quantity of the line for productID to an absolute
// value. A quantity of zero or below removes the line, matching RemoveItem.
// Updating an absent product does not create a line.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			break
		}
	}
	c.persist(ctx)
}

// Clear empties the cart, e.g. after checkout.
func (c *Cart) Clear(ctx context.Context) {
	c.lines = nil
	c.persist(ctx)
}

// TotalAmount folds unit price times quantity over all lines. The engine works
// in raw numeric units; currency formatting is the caller's concern.
func (c *Cart) TotalAmount() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// persist mirrors the cart to the durable slot. Failures are logged and
// swallowed: by the time a mutator returns the in-memory state already
// reflects the change, and that state is the source of truth for the session.
func (c *Cart) persist(ctx context.Context) {
	if err := c.slot.Save(ctx, c.lines); err != nil {
		log.Printf("[cart] persist failed: %v", err)
	}
}
