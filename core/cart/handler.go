package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/giftrove/giftrove-server/api/web"
	"github.com/giftrove/giftrove-server/api/weberr"
	"github.com/giftrove/giftrove-server/core/owner"
	"github.com/giftrove/giftrove-server/core/product"
	"github.com/giftrove/giftrove-server/core/vendor"
	"github.com/giftrove/giftrove-server/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// Config carries the dependencies shared by every cart handler.
type Config struct {
	DB       *sqlx.DB
	Session  *scs.SessionManager
	Log      logrus.FieldLogger
	Cache    *PayloadCache
	Currency string
}

// ItemNew is the add-to-cart request body.
type ItemNew struct {
	ProductID      string          `json:"productId" validate:"required"`
	VendorID       string          `json:"vendorId"`
	VendorSlug     string          `json:"vendorSlug"`
	RegistryID     string          `json:"registryId"`
	RegistryItemID *string         `json:"registryItemId"`
	Quantity       json.RawMessage `json:"quantity"`
	VariationKey   string          `json:"variationKey"`
	Variation      *Variation      `json:"variation"`
	GuestBrowserID string          `json:"guestBrowserId"`
}

// ItemUp is the update request body. GiftWrapOptionID stays raw so that
// "not provided" and "provided as null" stay distinguishable.
type ItemUp struct {
	CartItemID       string          `json:"cartItemId" validate:"required"`
	Quantity         json.RawMessage `json:"quantity"`
	Wrapping         *bool           `json:"wrapping"`
	GiftWrapOptionID json.RawMessage `json:"giftWrapOptionId"`
}

type ItemDelete struct {
	CartItemID string `json:"cartItemId"`
	CartID     string `json:"cartId"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// HandleShow returns the owner's active cart for the requested scope, or
// an empty payload when none exists. Reads may be served from the short
// TTL cache.
func HandleShow(cfg Config) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ident := owner.Resolve(ctx, cfg.Session, web.QueryParam(r, "guest_browser_id"))
		if ident.Zero() {
			return weberr.NotAuthorized(errors.New("no resolvable cart owner"))
		}

		scope, err := resolveScope(ctx, cfg.DB,
			web.QueryParam(r, "registry_id"),
			web.QueryParam(r, "vendor_id"),
			web.QueryParam(r, "vendor_slug"),
		)
		if err != nil {
			return err
		}

		if !scope.IsRegistry() {
			if err := MergeGuestCart(ctx, cfg.DB, cfg.Log, scope.VendorID, ident); err != nil {
				cfg.Log.WithFields(logrus.Fields{"error": err}).Warn("guest cart merge failed")
			}
		}

		c, err := FetchActive(ctx, cfg.DB, scope, ident.Owner())
		if err != nil {
			if errors.Is(err, ErrNoCart) {
				return web.Respond(ctx, w, EmptyPayload(), http.StatusOK)
			}
			return err
		}

		if p, ok := cfg.Cache.Get(c.ID); ok {
			return web.Respond(ctx, w, p, http.StatusOK)
		}

		p, err := FetchPayload(ctx, cfg.DB, c.ID)
		if err != nil {
			return err
		}
		cfg.Cache.Put(c.ID, p)

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleAddItem adds a product line to the owner's active cart, creating
// the cart on first add. The response payload is always fresh: the caller
// must see its own write.
func HandleAddItem(cfg Config) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req ItemNew
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding body: %w", err))
		}
		if err := validate.Check(req); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		ident := owner.Resolve(ctx, cfg.Session, req.GuestBrowserID)
		if ident.Zero() {
			return weberr.NotAuthorized(errors.New("no resolvable cart owner"))
		}

		scope := Scope{RegistryID: req.RegistryID}
		if !scope.IsRegistry() {
			vendorID, err := vendor.Resolve(ctx, cfg.DB, req.VendorID, req.VendorSlug)
			if err != nil {
				return err
			}
			if vendorID == "" {
				err := errors.New("vendor not found")
				return weberr.NewError(err, err.Error(), http.StatusNotFound)
			}
			scope.VendorID = vendorID

			if err := MergeGuestCart(ctx, cfg.DB, cfg.Log, vendorID, ident); err != nil {
				cfg.Log.WithFields(logrus.Fields{"error": err}).Warn("guest cart merge failed")
			}
		}

		prod, err := product.FetchPurchasable(ctx, cfg.DB, req.ProductID, scope.VendorID)
		if err != nil {
			if errors.Is(err, product.ErrNotAvailable) {
				return weberr.NewError(err, err.Error(), http.StatusNotFound)
			}
			return err
		}

		qty := parseQuantity(req.Quantity, 1, 1)
		if qty > prod.StockQty {
			err := fmt.Errorf("requested quantity exceeds stock: only %d available", prod.StockQty)
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		snapshot, priced := snapshotVariation(prod, req.VariationKey, req.Variation)
		price := product.UnitPrice(prod, priced)

		c, err := FetchOrCreateActive(ctx, cfg.DB, scope, ident.Owner(), cfg.Currency)
		if err != nil {
			return weberr.InternalError(err)
		}

		it := Item{
			ID:             validate.GenerateID(),
			CartID:         c.ID,
			ProductID:      prod.ID,
			RegistryItemID: req.RegistryItemID,
			Quantity:       qty,
			Price:          price,
			TotalPrice:     price.Mul(decimalFromInt(qty)),
			Variation:      snapshot,
			VariationKey:   snapshot.Key,
		}

		if err := upsertItem(ctx, cfg.DB, it); err != nil {
			return weberr.InternalError(err)
		}

		if err := Touch(ctx, cfg.DB, c.ID); err != nil {
			return weberr.InternalError(err)
		}

		p, err := FetchPayload(ctx, cfg.DB, c.ID)
		if err != nil {
			return err
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

// HandleUpdateItem changes one line's quantity and gift-wrap bookkeeping.
// Quantity zero deletes the line.
func HandleUpdateItem(cfg Config) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req ItemUp
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding body: %w", err))
		}
		if err := validate.Check(req); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		it, err := FetchItemByID(ctx, cfg.DB, req.CartItemID)
		if err != nil {
			if errors.Is(err, ErrItemMissing) {
				return weberr.NewError(err, err.Error(), http.StatusNotFound)
			}
			return err
		}

		qty := parseQuantity(req.Quantity, 0, 0)
		if qty == 0 {
			found, err := DeleteItem(ctx, cfg.DB, it.ID)
			if err != nil {
				return weberr.InternalError(err)
			}
			if !found {
				return weberr.NewError(ErrItemMissing, ErrItemMissing.Error(), http.StatusNotFound)
			}
			return web.Respond(ctx, w, successResponse{Success: true}, http.StatusOK)
		}

		it.Quantity = qty
		it.TotalPrice = it.Price.Mul(decimalFromInt(qty))
		it.Wrapping = resolveWrapping(req, it.Wrapping)

		if len(req.GiftWrapOptionID) > 0 {
			var id *string
			if err := json.Unmarshal(req.GiftWrapOptionID, &id); err != nil {
				return weberr.BadRequest(fmt.Errorf("decoding giftWrapOptionId: %w", err))
			}
			it.GiftWrapOptionID = id
		}

		if err := UpdateItem(ctx, cfg.DB, it); err != nil {
			return weberr.InternalError(err)
		}

		return web.Respond(ctx, w, successResponse{Success: true}, http.StatusOK)
	}
}

// HandleDelete removes a single line or clears a whole cart.
func HandleDelete(cfg Config) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var req ItemDelete
		if err := web.Decode(w, r, &req); err != nil {
			return weberr.BadRequest(fmt.Errorf("decoding body: %w", err))
		}

		switch {
		case req.CartItemID != "":
			if _, err := DeleteItem(ctx, cfg.DB, req.CartItemID); err != nil {
				return weberr.InternalError(err)
			}

		case req.CartID != "":
			if err := DeleteItems(ctx, cfg.DB, req.CartID); err != nil {
				return weberr.InternalError(err)
			}

		default:
			err := errors.New("nothing to delete")
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		return web.Respond(ctx, w, successResponse{Success: true}, http.StatusOK)
	}
}

// resolveScope picks the cart scope from request parameters. Registry
// wins over vendor; a vendor reference that resolves to nothing is fatal
// here because no cart lookup could succeed without a scope.
func resolveScope(ctx context.Context, db *sqlx.DB, registryID, vendorID, vendorSlug string) (Scope, error) {
	if registryID != "" {
		return Scope{RegistryID: registryID}, nil
	}

	if vendorID == "" && vendorSlug == "" {
		err := errors.New("vendor or registry scope is required")
		return Scope{}, weberr.NewError(err, err.Error(), http.StatusBadRequest)
	}

	id, err := vendor.Resolve(ctx, db, vendorID, vendorSlug)
	if err != nil {
		return Scope{}, err
	}
	if id == "" {
		err := errors.New("vendor not found")
		return Scope{}, weberr.NewError(err, err.Error(), http.StatusNotFound)
	}
	return Scope{VendorID: id}, nil
}

// snapshotVariation resolves the requested variation against the catalog.
// A catalog match is snapshot from the catalog; an unmatched request falls
// back to whatever the client supplied, snapshot as-is.
func snapshotVariation(prod product.Product, key string, supplied *Variation) (Variation, *product.Variant) {
	variants := product.ParseVariations(prod.Variations)

	if v, ok := product.MatchVariant(variants, key); ok {
		return Variation{
			Key:   key,
			ID:    v.ID,
			SKU:   v.SKU,
			Label: v.Label,
			Color: v.Color,
			Size:  v.Size,
			Price: v.Price,
		}, &v
	}

	if supplied != nil {
		snap := *supplied
		if snap.Key == "" {
			snap.Key = key
		}
		if snap.Price != nil {
			return snap, &product.Variant{Price: snap.Price}
		}
		return snap, nil
	}

	return Variation{Key: key}, nil
}

// resolveWrapping applies the update precedence: an explicit flag wins,
// else a supplied wrap option implies wrapping, else the line keeps its
// current value.
func resolveWrapping(req ItemUp, current bool) bool {
	if req.Wrapping != nil {
		return *req.Wrapping
	}
	if len(req.GiftWrapOptionID) > 0 && string(req.GiftWrapOptionID) != "null" {
		return true
	}
	return current
}
