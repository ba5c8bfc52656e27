package product

import (
	"context"
	"errors"
	"net/http"

	"github.com/giftrove/giftrove-server/api/web"
	"github.com/giftrove/giftrove-server/api/weberr"
	"github.com/giftrove/giftrove-server/validate"
	"github.com/jmoiron/sqlx"
)

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NewError(err, err.Error(), http.StatusBadRequest)
		}

		p, err := FetchPurchasable(ctx, db, id, "")
		if err != nil {
			if errors.Is(err, ErrNotAvailable) {
				return weberr.NewError(err, err.Error(), http.StatusNotFound)
			}
			return err
		}

		out := struct {
			Product
			Variations []Variant `json:"variations"`
		}{
			Product:    p,
			Variations: ParseVariations(p.Variations),
		}

		return web.Respond(ctx, w, out, http.StatusOK)
	}
}
