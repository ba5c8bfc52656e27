package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrNotAvailable = errors.New("product not available")

// FetchPurchasable loads a product gated on purchasability: approved and
// active. When vendorID is set the product must also belong to that vendor,
// which keeps storefront carts single-vendor.
func FetchPurchasable(ctx context.Context, db sqlx.ExtContext, id, vendorID string) (Product, error) {
	var (
		p   Product
		err error
	)

	if vendorID != "" {
		const q = `
		SELECT * FROM products
		WHERE product_id = $1 AND vendor_id = $2 AND status = 'approved' AND active = TRUE`
		err = sqlx.GetContext(ctx, db, &p, q, id, vendorID)
	} else {
		const q = `
		SELECT * FROM products
		WHERE product_id = $1 AND status = 'approved' AND active = TRUE`
		err = sqlx.GetContext(ctx, db, &p, q, id)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotAvailable
		}
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}
	return p, nil
}
