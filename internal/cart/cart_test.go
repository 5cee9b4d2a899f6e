package cart

import (
	"errors"
	"testing"
)

var (
	friedRice = ItemRef{ID: "item-1", Name: "Fried Rice", Price: 25000}
	icedTea   = ItemRef{ID: "item-2", Name: "Iced Tea", Price: 8000}
)

func TestAddItemMergesOnSameItemAndNote(t *testing.T) {
	c := New()

	if _, err := c.AddItem(friedRice, 2, "spicy"); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if _, err := c.AddItem(friedRice, 3, "spicy"); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 || lines[0].Note != "spicy" {
		t.Fatalf("expected quantity 5 note spicy, got %+v", lines[0])
	}

	// A different note yields a second, distinct line.
	if _, err := c.AddItem(friedRice, 1, ""); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if len(c.Lines()) != 2 {
		t.Fatalf("expected 2 distinct lines, got %d", len(c.Lines()))
	}
}

func TestAddItemClampsQuantityToOne(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		c := New()
		line, err := c.AddItem(friedRice, quantity, "")
		if err != nil {
			t.Fatalf("AddItem(%d) returned error: %v", quantity, err)
		}
		if line.Quantity != 1 {
			t.Fatalf("AddItem(%d): expected clamp to 1, got %d", quantity, line.Quantity)
		}
	}
}

func TestAddItemRejectsInvalidRef(t *testing.T) {
	tests := []struct {
		name string
		item ItemRef
	}{
		{"missing id", ItemRef{Name: "Fried Rice", Price: 25000}},
		{"missing name", ItemRef{ID: "item-1", Price: 25000}},
		{"negative price", ItemRef{ID: "item-1", Name: "Fried Rice", Price: -1}},
	}

	for _, tt := range tests {
		c := New()
		_, err := c.AddItem(tt.item, 1, "")

		var invalid ValidationError
		if !errors.As(err, &invalid) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if !c.IsEmpty() {
			t.Fatalf("%s: rejected add must leave cart unchanged", tt.name)
		}
	}
}

func TestUpdateQuantityToZeroEvictsLine(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 4, "")
	c.AddItem(icedTea, 1, "less sugar")

	before := c.TotalItemCount()

	if err := c.UpdateQuantity(LineKey{ItemID: "item-1"}, -4); err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}

	if len(c.Lines()) != 1 {
		t.Fatalf("expected line evicted, got %d lines", len(c.Lines()))
	}
	if got := before - c.TotalItemCount(); got != 4 {
		t.Fatalf("expected totalItemCount to drop by 4, dropped by %d", got)
	}
}

func TestSetQuantityZeroOrNegativeEvictsLine(t *testing.T) {
	for _, quantity := range []int{0, -2} {
		c := New()
		c.AddItem(friedRice, 3, "")

		if err := c.SetQuantity(LineKey{ItemID: "item-1"}, quantity); err != nil {
			t.Fatalf("SetQuantity(%d) returned error: %v", quantity, err)
		}
		if !c.IsEmpty() {
			t.Fatalf("SetQuantity(%d): expected empty cart", quantity)
		}
	}
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 1, "")

	err := c.UpdateQuantity(LineKey{ItemID: "nope"}, 1)

	var notFound LineNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected LineNotFoundError, got %v", err)
	}
}

func TestRemoveLineIsIdempotent(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 2, "")

	key := LineKey{ItemID: "item-1"}
	c.RemoveLine(key)
	c.RemoveLine(key)
	c.RemoveLine(LineKey{ItemID: "never-added"})

	if !c.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(c.Lines()))
	}
}

func TestUpdateNoteKeepsLinesDistinct(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 2, "spicy")
	c.AddItem(friedRice, 1, "mild")

	// Renaming "mild" to "spicy" collides with the first line's key but
	// must not merge; identity is fixed at creation time.
	if err := c.UpdateNote(LineKey{ItemID: "item-1", Note: "mild"}, "spicy"); err != nil {
		t.Fatalf("UpdateNote returned error: %v", err)
	}

	lines := c.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after note collision, got %d", len(lines))
	}
	if lines[0].Quantity != 2 || lines[1].Quantity != 1 {
		t.Fatalf("expected quantities preserved, got %+v", lines)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 2, "")
	c.AddItem(icedTea, 1, "less sugar")

	if got := c.TotalItemCount(); got != 3 {
		t.Fatalf("expected totalItemCount 3, got %d", got)
	}
	if got := c.TotalPrice(); got != 58000 {
		t.Fatalf("expected totalPrice 58000, got %d", got)
	}

	// Totals track every mutation exactly.
	c.UpdateQuantity(LineKey{ItemID: "item-2", Note: "less sugar"}, 4)
	if got := c.TotalPrice(); got != 2*25000+5*8000 {
		t.Fatalf("expected totalPrice 90000, got %d", got)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 2, "")

	c.Clear()
	c.Clear()

	if !c.IsEmpty() || c.TotalItemCount() != 0 || c.TotalPrice() != 0 {
		t.Fatal("expected cleared cart with zero totals")
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	c := New()
	c.AddItem(friedRice, 2, "")

	lines := c.Lines()
	lines[0].Quantity = 99

	if c.Lines()[0].Quantity != 2 {
		t.Fatal("mutating the returned slice must not touch cart state")
	}
}
