package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftrove/giftrove-server/core/owner"
	"github.com/giftrove/giftrove-server/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MergeGuestCart folds the guest's active storefront cart into the host's
// after a guest authenticates. It runs once per request, only for vendor
// scopes, and is idempotent: the guest cart is gone after the first run,
// so a second run finds nothing to do.
//
// Item-level failures are best-effort: each is logged and merging
// continues, so one bad line never strands the rest of the guest cart.
func MergeGuestCart(ctx context.Context, db *sqlx.DB, log logrus.FieldLogger, vendorID string, ident owner.Identity) error {
	if !ident.NeedsMerge() || vendorID == "" {
		return nil
	}

	scope := Scope{VendorID: vendorID}

	var hostCart, guestCart Cart
	var hostFound, guestFound bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := FetchActive(gctx, db, scope, owner.Owner{HostID: ident.HostID})
		if err != nil {
			if errors.Is(err, ErrNoCart) {
				return nil
			}
			return err
		}
		hostCart, hostFound = c, true
		return nil
	})
	g.Go(func() error {
		c, err := FetchActive(gctx, db, scope, owner.Owner{GuestID: ident.GuestID})
		if err != nil {
			if errors.Is(err, ErrNoCart) {
				return nil
			}
			return err
		}
		guestCart, guestFound = c, true
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("looking up carts to merge: %w", err)
	}

	if !guestFound {
		return nil
	}

	// No host cart: hand the guest cart over wholesale, items untouched.
	if !hostFound {
		if err := Repoint(ctx, db, guestCart.ID, ident.HostID); err != nil {
			return err
		}
		return nil
	}

	if hostCart.ID == guestCart.ID {
		return nil
	}

	guestItems, err := FetchItems(ctx, db, guestCart.ID)
	if err != nil {
		return err
	}

	for _, gi := range guestItems {
		existing, err := FetchItem(ctx, db, hostCart.ID, gi.ProductID, gi.VariationKey)
		switch {
		case err == nil:
			merged := mergeLine(existing, gi)
			if err := UpdateItem(ctx, db, merged); err != nil {
				log.WithFields(logrus.Fields{
					"cart_item_id": existing.ID,
					"error":        err,
				}).Warn("cart merge: folding guest line failed")
			}

		case errors.Is(err, ErrItemMissing):
			moved := gi
			moved.ID = validate.GenerateID()
			moved.CartID = hostCart.ID
			if err := CreateItem(ctx, db, moved); err != nil {
				log.WithFields(logrus.Fields{
					"product_id": gi.ProductID,
					"error":      err,
				}).Warn("cart merge: moving guest line failed")
			}

		default:
			log.WithFields(logrus.Fields{
				"product_id": gi.ProductID,
				"error":      err,
			}).Warn("cart merge: matching guest line failed")
		}
	}

	if err := DeleteItems(ctx, db, guestCart.ID); err != nil {
		return err
	}
	if err := Delete(ctx, db, guestCart.ID); err != nil {
		return err
	}
	return nil
}

// mergeLine folds a guest line into the matching host line: quantities
// add, the total is recomputed from the guest's unit price, and host
// customization (registry link, wrapping, wrap option) wins whenever the
// host line carries a value.
func mergeLine(host, guest Item) Item {
	host.Quantity += guest.Quantity
	host.Price = guest.Price
	host.TotalPrice = guest.Price.Mul(decimalFromInt(host.Quantity))

	if host.RegistryItemID == nil {
		host.RegistryItemID = guest.RegistryItemID
	}
	if host.GiftWrapOptionID == nil {
		host.GiftWrapOptionID = guest.GiftWrapOptionID
	}
	if host.Variation.IsZero() {
		host.Variation = guest.Variation
	}

	return host
}
