package cart

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Payload is the read model returned by every cart read and write. A nil
// Cart with empty items is the successful "no cart yet" answer, not an
// error.
type Payload struct {
	Cart     *Cart           `json:"cart"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// LineItem expands a cart line with the product snapshot and the vendor's
// public identity for storefront rendering.
type LineItem struct {
	Item
	Product ProductSnapshot `json:"product"`
	Vendor  VendorIdentity  `json:"vendor"`
}

type ProductSnapshot struct {
	ID            string              `json:"id" db:"p_id"`
	Name          string              `json:"name" db:"p_name"`
	Price         decimal.NullDecimal `json:"price" db:"p_price"`
	Weight        decimal.NullDecimal `json:"weight" db:"p_weight"`
	ServiceCharge decimal.NullDecimal `json:"serviceCharge" db:"p_service_charge"`
	StockQty      int                 `json:"stockQty" db:"p_stock_qty"`
	Images        types.JSONText      `json:"images" db:"p_images"`
	ProductCode   string              `json:"productCode" db:"p_code"`
	VendorID      string              `json:"vendorId" db:"p_vendor_id"`
}

type VendorIdentity struct {
	ID           string `json:"id" db:"v_id"`
	Slug         string `json:"slug" db:"v_slug"`
	BusinessName string `json:"businessName" db:"v_business_name"`
	LogoURL      string `json:"logoUrl" db:"v_logo"`
}

// EmptyPayload is what a read returns when the owner has no active cart.
func EmptyPayload() Payload {
	return Payload{Items: []LineItem{}, Subtotal: decimal.Zero}
}

// BuildPayload assembles the read model. The subtotal is the sum of the
// persisted line totals, never recomputed from price and quantity.
func BuildPayload(c Cart, lines []LineItem) Payload {
	subtotal := decimal.Zero
	for _, li := range lines {
		subtotal = subtotal.Add(li.TotalPrice)
	}

	return Payload{
		Cart:     &c,
		Items:    lines,
		Subtotal: subtotal,
	}
}

// FetchPayload loads the full read model for a cart straight from the
// store, joining each line with its product and vendor.
func FetchPayload(ctx context.Context, db sqlx.ExtContext, cartID string) (Payload, error) {
	c, err := FetchByID(ctx, db, cartID)
	if err != nil {
		return Payload{}, err
	}

	const q = `
	SELECT ci.*,
	       p.product_id AS p_id, p.name AS p_name, p.price AS p_price,
	       p.weight AS p_weight, p.service_charge AS p_service_charge,
	       p.stock_qty AS p_stock_qty, p.images AS p_images,
	       p.product_code AS p_code, p.vendor_id AS p_vendor_id,
	       v.vendor_id AS v_id, v.slug AS v_slug,
	       v.business_name AS v_business_name, v.logo_url AS v_logo
	FROM cart_items ci
	JOIN products p ON p.product_id = ci.product_id
	JOIN vendors v ON v.vendor_id = p.vendor_id
	WHERE ci.cart_id = $1
	ORDER BY ci.created_at`

	// Flat row shape for sqlx; nested structs would not map to the
	// aliased columns.
	type lineRow struct {
		Item
		ProductSnapshot
		VendorIdentity
	}

	rows := []lineRow{}
	if err := sqlx.SelectContext(ctx, db, &rows, q, cartID); err != nil {
		return Payload{}, fmt.Errorf("selecting lines of cart[%s]: %w", cartID, err)
	}

	lines := make([]LineItem, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, LineItem{
			Item:    row.Item,
			Product: row.ProductSnapshot,
			Vendor:  row.VendorIdentity,
		})
	}

	return BuildPayload(c, lines), nil
}
