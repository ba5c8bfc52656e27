package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/giftrove/giftrove-server/api/middleware"
	"github.com/giftrove/giftrove-server/api/web"
	"github.com/giftrove/giftrove-server/core/cart"
	"github.com/giftrove/giftrove-server/core/owner"
	"github.com/giftrove/giftrove-server/core/product"
	"github.com/giftrove/giftrove-server/core/registry"
	"github.com/giftrove/giftrove-server/core/vendor"
	"github.com/giftrove/giftrove-server/database"
	"github.com/giftrove/giftrove-server/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin   string
	Log          logrus.FieldLogger
	DB           *sqlx.DB
	Session      *scs.SessionManager
	Limiter      *rate.Limiter
	CartCacheTTL time.Duration
	CartCurrency string
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, owner.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.Limiter != nil {
		a.mw = append(a.mw, middleware.RateLimit(cfg.Limiter))
	}

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}

		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	cartCfg := cart.Config{
		DB:       cfg.DB,
		Session:  cfg.Session,
		Log:      cfg.Log,
		Cache:    cart.NewPayloadCache(cfg.CartCacheTTL),
		Currency: cfg.CartCurrency,
	}

	a.Handle(http.MethodGet, "/status", handleStatus(cfg.DB))

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cartCfg))
	a.Handle(http.MethodPost, "/cart", cart.HandleAddItem(cartCfg))
	a.Handle(http.MethodPatch, "/cart", cart.HandleUpdateItem(cartCfg))
	a.Handle(http.MethodDelete, "/cart", cart.HandleDelete(cartCfg))

	a.Handle(http.MethodGet, "/vendors/{slug}", vendor.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodGet, "/registries/{id}", registry.HandleShow(cfg.DB))

	return a.Router
}

func handleStatus(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if err := database.StatusCheck(ctx, db); err != nil {
			status = "database not ready"
			code = http.StatusInternalServerError
		}

		out := struct {
			Status string `json:"status"`
		}{Status: status}

		return web.Respond(ctx, w, out, code)
	}
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
