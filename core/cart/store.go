package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/giftrove/giftrove-server/core/owner"
	"github.com/giftrove/giftrove-server/validate"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNoCart      = errors.New("no active cart")
	ErrItemMissing = errors.New("cart item not found")
)

// Scope binds a cart to exactly one of a vendor or a registry. Registry
// takes precedence: registry carts aggregate items across vendors.
type Scope struct {
	VendorID   string
	RegistryID string
}

func (s Scope) IsRegistry() bool { return s.RegistryID != "" }

// uniqueViolation reports whether err is the store rejecting a duplicate
// row, which is how concurrent find-or-create races surface.
func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// FetchActive returns the single active cart for (scope, owner). Exactly
// one owner predicate is applied, never both.
func FetchActive(ctx context.Context, db sqlx.ExtContext, scope Scope, ow owner.Owner) (Cart, error) {
	var (
		c   Cart
		err error
	)

	switch {
	case scope.IsRegistry() && ow.HostID != "":
		const q = `SELECT * FROM carts WHERE registry_id = $1 AND host_id = $2 AND status = 'active'`
		err = sqlx.GetContext(ctx, db, &c, q, scope.RegistryID, ow.HostID)
	case scope.IsRegistry():
		const q = `SELECT * FROM carts WHERE registry_id = $1 AND guest_browser_id = $2 AND status = 'active'`
		err = sqlx.GetContext(ctx, db, &c, q, scope.RegistryID, ow.GuestID)
	case ow.HostID != "":
		const q = `SELECT * FROM carts WHERE vendor_id = $1 AND host_id = $2 AND status = 'active'`
		err = sqlx.GetContext(ctx, db, &c, q, scope.VendorID, ow.HostID)
	default:
		const q = `SELECT * FROM carts WHERE vendor_id = $1 AND guest_browser_id = $2 AND status = 'active'`
		err = sqlx.GetContext(ctx, db, &c, q, scope.VendorID, ow.GuestID)
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, ErrNoCart
		}
		return Cart{}, fmt.Errorf("selecting active cart: %w", err)
	}
	return c, nil
}

// Create inserts a new active cart. Carts are created lazily on first add,
// never on read.
func Create(ctx context.Context, db sqlx.ExtContext, scope Scope, ow owner.Owner, currency string) (Cart, error) {
	c := Cart{
		ID:       validate.GenerateID(),
		Status:   StatusActive,
		Currency: currency,
	}
	if scope.IsRegistry() {
		c.RegistryID = &scope.RegistryID
	} else {
		c.VendorID = &scope.VendorID
	}
	if ow.HostID != "" {
		c.HostID = &ow.HostID
	} else {
		c.GuestBrowserID = &ow.GuestID
	}

	const q = `
	INSERT INTO carts (cart_id, vendor_id, registry_id, host_id, guest_browser_id, status, currency)
	VALUES (:cart_id, :vendor_id, :registry_id, :host_id, :guest_browser_id, :status, :currency)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, c); err != nil {
		return Cart{}, fmt.Errorf("inserting cart: %w", err)
	}
	return c, nil
}

// FetchOrCreateActive finds the active cart for (scope, owner), creating
// it on miss. A concurrent create loses the unique-index race and retries
// as a fetch.
func FetchOrCreateActive(ctx context.Context, db sqlx.ExtContext, scope Scope, ow owner.Owner, currency string) (Cart, error) {
	c, err := FetchActive(ctx, db, scope, ow)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNoCart) {
		return Cart{}, err
	}

	c, err = Create(ctx, db, scope, ow, currency)
	if err == nil {
		return c, nil
	}
	if uniqueViolation(err) {
		return FetchActive(ctx, db, scope, ow)
	}
	return Cart{}, err
}

func FetchByID(ctx context.Context, db sqlx.ExtContext, cartID string) (Cart, error) {
	const q = `SELECT * FROM carts WHERE cart_id = $1`

	var c Cart
	if err := sqlx.GetContext(ctx, db, &c, q, cartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Cart{}, ErrNoCart
		}
		return Cart{}, fmt.Errorf("selecting cart[%s]: %w", cartID, err)
	}
	return c, nil
}

// Repoint hands a guest cart over to a host, preserving the cart id and
// its items. Cheapest merge path when the host has no cart of their own.
func Repoint(ctx context.Context, db sqlx.ExtContext, cartID, hostID string) error {
	const q = `
	UPDATE carts SET host_id = $2, guest_browser_id = NULL, updated_at = $3
	WHERE cart_id = $1`

	if _, err := db.ExecContext(ctx, q, cartID, hostID, time.Now().UTC()); err != nil {
		return fmt.Errorf("repointing cart[%s] to host[%s]: %w", cartID, hostID, err)
	}
	return nil
}

func Touch(ctx context.Context, db sqlx.ExtContext, cartID string) error {
	const q = `UPDATE carts SET updated_at = $2 WHERE cart_id = $1`

	if _, err := db.ExecContext(ctx, q, cartID, time.Now().UTC()); err != nil {
		return fmt.Errorf("touching cart[%s]: %w", cartID, err)
	}
	return nil
}

func Delete(ctx context.Context, db sqlx.ExtContext, cartID string) error {
	const q = `DELETE FROM carts WHERE cart_id = $1`

	if _, err := db.ExecContext(ctx, q, cartID); err != nil {
		return fmt.Errorf("deleting cart[%s]: %w", cartID, err)
	}
	return nil
}

func FetchItems(ctx context.Context, db sqlx.ExtContext, cartID string) ([]Item, error) {
	const q = `SELECT * FROM cart_items WHERE cart_id = $1 ORDER BY created_at`

	items := []Item{}
	if err := sqlx.SelectContext(ctx, db, &items, q, cartID); err != nil {
		return nil, fmt.Errorf("selecting items of cart[%s]: %w", cartID, err)
	}
	return items, nil
}

// FetchItem looks up the line identified by the (cart, product, variation
// key) uniqueness triple. The empty key stands for "no variation".
func FetchItem(ctx context.Context, db sqlx.ExtContext, cartID, productID, variationKey string) (Item, error) {
	const q = `
	SELECT * FROM cart_items
	WHERE cart_id = $1 AND product_id = $2 AND variation_key = $3`

	var it Item
	if err := sqlx.GetContext(ctx, db, &it, q, cartID, productID, variationKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrItemMissing
		}
		return Item{}, fmt.Errorf("selecting item of cart[%s] product[%s]: %w", cartID, productID, err)
	}
	return it, nil
}

func FetchItemByID(ctx context.Context, db sqlx.ExtContext, itemID string) (Item, error) {
	const q = `SELECT * FROM cart_items WHERE cart_item_id = $1`

	var it Item
	if err := sqlx.GetContext(ctx, db, &it, q, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrItemMissing
		}
		return Item{}, fmt.Errorf("selecting item[%s]: %w", itemID, err)
	}
	return it, nil
}

func CreateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO cart_items
		(cart_item_id, cart_id, product_id, registry_item_id, quantity, price,
		 total_price, variation, variation_key, wrapping, gift_wrap_option_id)
	VALUES
		(:cart_item_id, :cart_id, :product_id, :registry_item_id, :quantity, :price,
		 :total_price, :variation, :variation_key, :wrapping, :gift_wrap_option_id)`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("inserting item into cart[%s]: %w", it.CartID, err)
	}
	return nil
}

func UpdateItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	const q = `
	UPDATE cart_items SET
		registry_item_id = :registry_item_id,
		quantity = :quantity,
		price = :price,
		total_price = :total_price,
		variation = :variation,
		variation_key = :variation_key,
		wrapping = :wrapping,
		gift_wrap_option_id = :gift_wrap_option_id,
		updated_at = now()
	WHERE cart_item_id = :cart_item_id`

	if _, err := sqlx.NamedExecContext(ctx, db, q, it); err != nil {
		return fmt.Errorf("updating item[%s]: %w", it.ID, err)
	}
	return nil
}

// DeleteItem removes one line and reports whether it existed.
func DeleteItem(ctx context.Context, db sqlx.ExtContext, itemID string) (bool, error) {
	const q = `DELETE FROM cart_items WHERE cart_item_id = $1`

	res, err := db.ExecContext(ctx, q, itemID)
	if err != nil {
		return false, fmt.Errorf("deleting item[%s]: %w", itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting item[%s]: %w", itemID, err)
	}
	return n > 0, nil
}

// upsertItem folds an add into the existing line for the same (product,
// variation) pair, or inserts a new line. A concurrent first add loses
// the unique-index race and retries as a fold.
func upsertItem(ctx context.Context, db sqlx.ExtContext, it Item) error {
	existing, err := FetchItem(ctx, db, it.CartID, it.ProductID, it.VariationKey)
	if err != nil && !errors.Is(err, ErrItemMissing) {
		return err
	}

	if errors.Is(err, ErrItemMissing) {
		err := CreateItem(ctx, db, it)
		if err == nil || !uniqueViolation(err) {
			return err
		}
		existing, err = FetchItem(ctx, db, it.CartID, it.ProductID, it.VariationKey)
		if err != nil {
			return err
		}
	}

	existing.Quantity += it.Quantity
	existing.Price = it.Price
	existing.TotalPrice = it.Price.Mul(decimalFromInt(existing.Quantity))
	existing.Variation = it.Variation
	if it.RegistryItemID != nil {
		existing.RegistryItemID = it.RegistryItemID
	}

	return UpdateItem(ctx, db, existing)
}

// DeleteItems clears every line in a cart, leaving the cart row in place.
func DeleteItems(ctx context.Context, db sqlx.ExtContext, cartID string) error {
	const q = `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := db.ExecContext(ctx, q, cartID); err != nil {
		return fmt.Errorf("clearing cart[%s]: %w", cartID, err)
	}
	return nil
}
