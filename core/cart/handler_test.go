package cart

import (
	"encoding/json"
	"testing"

	"github.com/giftrove/giftrove-server/core/product"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

func boolptr(b bool) *bool { return &b }

func TestResolveWrapping(t *testing.T) {
	tests := []struct {
		name    string
		req     ItemUp
		current bool
		want    bool
	}{
		{
			name: "explicit flag wins over wrap option",
			req:  ItemUp{Wrapping: boolptr(false), GiftWrapOptionID: json.RawMessage(`"opt-1"`)},
			want: false,
		},
		{
			name: "wrap option implies wrapping",
			req:  ItemUp{GiftWrapOptionID: json.RawMessage(`"opt-1"`)},
			want: true,
		},
		{
			name:    "clearing the option keeps current",
			req:     ItemUp{GiftWrapOptionID: json.RawMessage(`null`)},
			current: true,
			want:    true,
		},
		{
			name:    "nothing supplied keeps current",
			req:     ItemUp{},
			current: true,
			want:    true,
		},
		{
			name: "explicit true",
			req:  ItemUp{Wrapping: boolptr(true)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveWrapping(tt.req, tt.current); got != tt.want {
				t.Fatalf("resolveWrapping = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotVariation(t *testing.T) {
	prod := product.Product{
		Variations: types.JSONText(`[
			{"id": "var-s", "sku": "SKU-S", "label": "Small", "size": "S", "price": 24.50},
			{"id": "var-l", "sku": "SKU-L", "label": "Large", "size": "L"}
		]`),
	}

	t.Run("catalog match", func(t *testing.T) {
		snap, priced := snapshotVariation(prod, "var-s", nil)
		if snap.Key != "var-s" || snap.Label != "Small" || snap.SKU != "SKU-S" {
			t.Fatalf("snapshot = %+v", snap)
		}
		if priced == nil || priced.Price == nil || !priced.Price.Equal(decimal.RequireFromString("24.50")) {
			t.Fatalf("matched variant not priced: %+v", priced)
		}
	})

	t.Run("catalog match without price", func(t *testing.T) {
		snap, priced := snapshotVariation(prod, "var-l", nil)
		if snap.Label != "Large" {
			t.Fatalf("snapshot = %+v", snap)
		}
		if priced == nil || priced.Price != nil {
			t.Fatalf("variant price should be absent: %+v", priced)
		}
	})

	t.Run("unmatched trusts the client snapshot", func(t *testing.T) {
		p := decimal.RequireFromString("9.99")
		supplied := &Variation{Label: "Custom engraving", Price: &p}
		snap, priced := snapshotVariation(prod, "custom", supplied)
		if snap.Key != "custom" || snap.Label != "Custom engraving" {
			t.Fatalf("snapshot = %+v", snap)
		}
		if priced == nil || !priced.Price.Equal(p) {
			t.Fatalf("client price not carried: %+v", priced)
		}
	})

	t.Run("no variation at all", func(t *testing.T) {
		snap, priced := snapshotVariation(prod, "", nil)
		if !snap.IsZero() {
			t.Fatalf("snapshot should be empty: %+v", snap)
		}
		if priced != nil {
			t.Fatalf("priced variant should be nil: %+v", priced)
		}
	})
}
