// Package cart implements the shopping cart core: locating the single
// active cart for an owner, folding a guest cart into a host cart after
// login, and the add/update/remove line mutations.
package cart

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const StatusActive = "active"

// Cart is one shopping session, scoped to either a vendor storefront or a
// gift registry, and owned by either a host or a guest browser.
type Cart struct {
	ID             string    `json:"id" db:"cart_id"`
	VendorID       *string   `json:"vendorId" db:"vendor_id"`
	RegistryID     *string   `json:"registryId" db:"registry_id"`
	HostID         *string   `json:"hostId" db:"host_id"`
	GuestBrowserID *string   `json:"guestBrowserId" db:"guest_browser_id"`
	Status         string    `json:"status" db:"status"`
	Currency       string    `json:"currency" db:"currency"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Item is one product line. Price is the unit price snapshot taken at add
// time (service charge included); TotalPrice is persisted, not derived.
type Item struct {
	ID               string          `json:"id" db:"cart_item_id"`
	CartID           string          `json:"cartId" db:"cart_id"`
	ProductID        string          `json:"productId" db:"product_id"`
	RegistryItemID   *string         `json:"registryItemId" db:"registry_item_id"`
	Quantity         int             `json:"quantity" db:"quantity"`
	Price            decimal.Decimal `json:"price" db:"price"`
	TotalPrice       decimal.Decimal `json:"totalPrice" db:"total_price"`
	Variation        Variation       `json:"variation" db:"variation"`
	VariationKey     string          `json:"-" db:"variation_key"`
	Wrapping         bool            `json:"wrapping" db:"wrapping"`
	GiftWrapOptionID *string         `json:"giftWrapOptionId" db:"gift_wrap_option_id"`
	CreatedAt        time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time       `json:"updatedAt" db:"updated_at"`
}

// Variation is the variant snapshot frozen onto a cart line.
type Variation struct {
	Key   string           `json:"key,omitempty"`
	ID    string           `json:"id,omitempty"`
	SKU   string           `json:"sku,omitempty"`
	Label string           `json:"label,omitempty"`
	Color string           `json:"color,omitempty"`
	Size  string           `json:"size,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

func (v Variation) IsZero() bool {
	return v.Key == "" && v.ID == "" && v.SKU == "" && v.Label == "" &&
		v.Color == "" && v.Size == "" && v.Price == nil
}

// MarshalJSON renders an empty snapshot as null so clients see the same
// shape the column stores.
func (v Variation) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}

	type alias Variation
	return json.Marshal(alias(v))
}

func (v Variation) Value() (driver.Value, error) {
	if v.IsZero() {
		return nil, nil
	}

	type alias Variation
	return json.Marshal(alias(v))
}

func (v *Variation) Scan(src interface{}) error {
	if src == nil {
		*v = Variation{}
		return nil
	}

	var raw []byte
	switch s := src.(type) {
	case []byte:
		raw = s
	case string:
		raw = []byte(s)
	default:
		return fmt.Errorf("unsupported variation column type %T", src)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*v = Variation{}
		return nil
	}

	type alias Variation
	var a alias
	if err := json.Unmarshal(raw, &a); err != nil {
		return fmt.Errorf("decoding variation column: %w", err)
	}
	*v = Variation(a)
	return nil
}
