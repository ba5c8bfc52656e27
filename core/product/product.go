package product

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Product struct {
	ID            string              `json:"id" db:"product_id"`
	VendorID      string              `json:"vendorId" db:"vendor_id"`
	Name          string              `json:"name" db:"name"`
	ProductCode   string              `json:"productCode" db:"product_code"`
	Price         decimal.NullDecimal `json:"price" db:"price"`
	ServiceCharge decimal.NullDecimal `json:"serviceCharge" db:"service_charge"`
	StockQty      int                 `json:"stockQty" db:"stock_qty"`
	Weight        decimal.NullDecimal `json:"weight" db:"weight"`
	Images        types.JSONText      `json:"images" db:"images"`
	Variations    types.JSONText      `json:"-" db:"variations"`
	Status        string              `json:"status" db:"status"`
	Active        bool                `json:"active" db:"active"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" db:"updated_at"`
}

// Variant is one catalog variation descriptor. Vendors author these as
// semi-structured JSON, so every field is optional.
type Variant struct {
	Key   string           `json:"key,omitempty"`
	ID    string           `json:"id,omitempty"`
	SKU   string           `json:"sku,omitempty"`
	Label string           `json:"label,omitempty"`
	Color string           `json:"color,omitempty"`
	Size  string           `json:"size,omitempty"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// UnitPrice computes the add-time price snapshot for one unit: the variant
// price when one is set, else the base price, plus the service charge.
// Products missing both prices cost just the service charge, or zero.
func UnitPrice(p Product, v *Variant) decimal.Decimal {
	charge := decimal.Zero
	if p.ServiceCharge.Valid {
		charge = p.ServiceCharge.Decimal
	}

	if v != nil && v.Price != nil {
		return v.Price.Add(charge)
	}
	if p.Price.Valid {
		return p.Price.Decimal.Add(charge)
	}
	return charge
}
