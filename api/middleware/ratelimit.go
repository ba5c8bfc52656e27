package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/giftrove/giftrove-server/api/web"
	"github.com/giftrove/giftrove-server/api/weberr"
	"github.com/giftrove/giftrove-server/rate"
)

// RateLimit throttles by client address. The limiter evicts idle clients
// on its own schedule.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, err.Error(), http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
