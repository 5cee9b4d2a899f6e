package cart

import (
	"fmt"
	"strings"
)

// ItemRef is the snapshot of a menu item taken when a line is added. Price
// changes in the catalogue do not retroactively alter existing lines.
type ItemRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Photo string `json:"photo,omitempty"`
}

// Line is one distinct (item, note) pairing in the cart. Quantity is always
// >= 1; a line that would drop to zero is removed instead.
type Line struct {
	Item     ItemRef `json:"item"`
	Quantity int     `json:"quantity"`
	Note     string  `json:"note"`
}

// LineKey identifies a line by item id plus the exact note text. Two lines
// with the same item but different notes are distinct on purpose: a customer
// may want two preparations of the same dish.
type LineKey struct {
	ItemID string `json:"itemId"`
	Note   string `json:"note"`
}

func (l Line) Key() LineKey {
	return LineKey{ItemID: l.Item.ID, Note: l.Note}
}

func (l Line) Subtotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type LineNotFoundError struct {
	Key LineKey
}

func (e LineNotFoundError) Error() string {
	return fmt.Sprintf("no cart line for item %s", e.Key.ItemID)
}

// Cart holds the lines of one in-progress order. It is exclusively owned by
// one browsing session; callers serialize access (see Session).
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// AddItem merges into an existing line when (item id, note) match, otherwise
// appends a new line snapshotting the item. Quantities below 1 are clamped
// to 1.
func (c *Cart) AddItem(item ItemRef, quantity int, note string) (Line, error) {
	if strings.TrimSpace(item.ID) == "" {
		return Line{}, ValidationError{Field: "item", Reason: "id required"}
	}
	if strings.TrimSpace(item.Name) == "" {
		return Line{}, ValidationError{Field: "item", Reason: "name required"}
	}
	if item.Price < 0 {
		return Line{}, ValidationError{Field: "item", Reason: "negative price"}
	}
	if quantity < 1 {
		quantity = 1
	}

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID && c.lines[i].Note == note {
			c.lines[i].Quantity += quantity
			return c.lines[i], nil
		}
	}

	line := Line{Item: item, Quantity: quantity, Note: note}
	c.lines = append(c.lines, line)
	return line, nil
}

// UpdateQuantity adds delta to the matching line. A resulting quantity of
// zero or less removes the line entirely.
func (c *Cart) UpdateQuantity(key LineKey, delta int) error {
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Quantity += delta
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return nil
		}
	}
	return LineNotFoundError{Key: key}
}

// SetQuantity assigns an absolute quantity. Zero or less removes the line.
func (c *Cart) SetQuantity(key LineKey, quantity int) error {
	for i := range c.lines {
		if c.lines[i].Key() == key {
			if quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
				return nil
			}
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return LineNotFoundError{Key: key}
}

// UpdateNote replaces the note on an existing line. Lines stay distinct by
// identity at creation time: no merge happens even when the new note
// collides with another line's key.
func (c *Cart) UpdateNote(key LineKey, note string) error {
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines[i].Note = note
			return nil
		}
	}
	return LineNotFoundError{Key: key}
}

// RemoveLine deletes the matching line. Removing an absent key is a no-op.
func (c *Cart) RemoveLine(key LineKey) {
	for i := range c.lines {
		if c.lines[i].Key() == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItemCount() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}
