package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPayloadCache(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewPayloadCache(30 * time.Second)
	c.now = func() time.Time { return now }

	if _, ok := c.Get("cart-1"); ok {
		t.Fatal("empty cache must miss")
	}

	p := Payload{Subtotal: decimal.RequireFromString("23.00")}
	c.Put("cart-1", p)

	got, ok := c.Get("cart-1")
	if !ok {
		t.Fatal("expected a hit inside the TTL window")
	}
	if !got.Subtotal.Equal(p.Subtotal) {
		t.Fatalf("subtotal = %s, want %s", got.Subtotal, p.Subtotal)
	}

	// Still inside the window.
	now = now.Add(29 * time.Second)
	if _, ok := c.Get("cart-1"); !ok {
		t.Fatal("expected a hit just before expiry")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("cart-1"); ok {
		t.Fatal("expected a miss after expiry")
	}

	// Expired entries are dropped, so a re-put starts a fresh window.
	c.Put("cart-1", p)
	if _, ok := c.Get("cart-1"); !ok {
		t.Fatal("expected a hit after re-put")
	}
}
