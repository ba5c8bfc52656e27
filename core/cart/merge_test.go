package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func strptr(s string) *string { return &s }

func TestMergeLine(t *testing.T) {
	price := decimal.RequireFromString("11.50")

	host := Item{
		ID:         "host-item",
		CartID:     "host-cart",
		ProductID:  "p1",
		Quantity:   2,
		Price:      price,
		TotalPrice: price.Mul(decimal.NewFromInt(2)),
	}
	guest := Item{
		ID:         "guest-item",
		CartID:     "guest-cart",
		ProductID:  "p1",
		Quantity:   3,
		Price:      price,
		TotalPrice: price.Mul(decimal.NewFromInt(3)),
	}

	got := mergeLine(host, guest)

	if got.ID != "host-item" || got.CartID != "host-cart" {
		t.Fatalf("merge must keep the host line identity, got %+v", got)
	}
	if got.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", got.Quantity)
	}
	want := price.Mul(decimal.NewFromInt(5))
	if !got.TotalPrice.Equal(want) {
		t.Fatalf("total = %s, want %s", got.TotalPrice, want)
	}
}

func TestMergeLineTotalUsesGuestPrice(t *testing.T) {
	host := Item{Quantity: 1, Price: decimal.RequireFromString("10.00")}
	guest := Item{Quantity: 1, Price: decimal.RequireFromString("12.00")}

	got := mergeLine(host, guest)

	if !got.Price.Equal(guest.Price) {
		t.Fatalf("price = %s, want guest price %s", got.Price, guest.Price)
	}
	want := decimal.RequireFromString("24.00")
	if !got.TotalPrice.Equal(want) {
		t.Fatalf("total = %s, want %s", got.TotalPrice, want)
	}
}

func TestMergeLineHostCustomizationWins(t *testing.T) {
	host := Item{
		Quantity:         1,
		RegistryItemID:   strptr("host-reg"),
		GiftWrapOptionID: strptr("host-wrap"),
		Wrapping:         true,
		Variation:        Variation{Key: "v1", Label: "Host"},
	}
	guest := Item{
		Quantity:         1,
		RegistryItemID:   strptr("guest-reg"),
		GiftWrapOptionID: strptr("guest-wrap"),
		Variation:        Variation{Key: "v1", Label: "Guest"},
	}

	got := mergeLine(host, guest)

	if *got.RegistryItemID != "host-reg" {
		t.Fatalf("registryItemId = %s, want host-reg", *got.RegistryItemID)
	}
	if *got.GiftWrapOptionID != "host-wrap" {
		t.Fatalf("giftWrapOptionId = %s, want host-wrap", *got.GiftWrapOptionID)
	}
	if !got.Wrapping {
		t.Fatal("wrapping flag must keep the host value")
	}
	if got.Variation.Label != "Host" {
		t.Fatalf("variation label = %s, want Host", got.Variation.Label)
	}
}

func TestMergeLineGuestFillsGaps(t *testing.T) {
	host := Item{Quantity: 1}
	guest := Item{
		Quantity:         1,
		RegistryItemID:   strptr("guest-reg"),
		GiftWrapOptionID: strptr("guest-wrap"),
		Variation:        Variation{Key: "v1", Label: "Guest"},
	}

	got := mergeLine(host, guest)

	if got.RegistryItemID == nil || *got.RegistryItemID != "guest-reg" {
		t.Fatalf("registryItemId not taken from guest: %+v", got.RegistryItemID)
	}
	if got.GiftWrapOptionID == nil || *got.GiftWrapOptionID != "guest-wrap" {
		t.Fatalf("giftWrapOptionId not taken from guest: %+v", got.GiftWrapOptionID)
	}
	if got.Variation.Label != "Guest" {
		t.Fatalf("variation label = %s, want Guest", got.Variation.Label)
	}
}
