package database

import (
	"context"
	"fmt"

	"github.com/giftrove/giftrove-server/random"
	"github.com/jmoiron/sqlx"
)

// Seed loads a small development data set: a couple of approved vendors,
// each with purchasable products carrying variation descriptors.
func Seed(ctx context.Context, db *sqlx.DB) error {
	return Transaction(db, func(tx sqlx.ExtContext) error {
		vendors := []struct {
			slug string
			name string
		}{
			{"velvet-and-vine", "Velvet & Vine Gifting Co."},
			{"amberlight-home", "Amberlight Home"},
		}

		for _, v := range vendors {
			var vendorID string
			const qv = `
			INSERT INTO vendors (slug, business_name, logo_url)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO UPDATE SET business_name = EXCLUDED.business_name
			RETURNING vendor_id`

			logo := fmt.Sprintf("https://cdn.giftrove.dev/logos/%s.png", v.slug)
			if err := sqlx.GetContext(ctx, tx, &vendorID, qv, v.slug, v.name, logo); err != nil {
				return fmt.Errorf("seeding vendor[%s]: %w", v.slug, err)
			}

			for i := 0; i < 4; i++ {
				code := random.String(8)
				variations := `[
					{"id": "var-s", "sku": "` + code + `-S", "label": "Small", "size": "S", "price": 24.50},
					{"id": "var-l", "sku": "` + code + `-L", "label": "Large", "size": "L", "price": 39.00}
				]`

				const qp = `
				INSERT INTO products
					(vendor_id, name, product_code, price, service_charge, stock_qty, weight, images, variations, status, active)
				VALUES
					($1, $2, $3, $4, $5, $6, $7, $8, $9, 'approved', TRUE)`

				name := fmt.Sprintf("%s Gift Set %d", v.name, i+1)
				images := fmt.Sprintf(`["https://cdn.giftrove.dev/products/%s.jpg"]`, code)
				if _, err := tx.ExecContext(ctx, qp, vendorID, name, code, 29.99, 1.50, 25, 0.75, images, variations); err != nil {
					return fmt.Errorf("seeding product[%s]: %w", code, err)
				}
			}
		}

		return nil
	})
}
