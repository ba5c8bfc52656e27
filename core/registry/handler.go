package registry

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

		reg, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return weberr.NewError(err, err.Error(), http.StatusNotFound)
			}
			return err
		}

		return web.Respond(ctx, w, reg, http.StatusOK)
	}
}
