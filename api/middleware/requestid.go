package middleware

import (
	"context"
	"net/http"

	"github.com/giftrove/giftrove-server/api/web"
	"github.com/google/uuid"
)

// RequestIDHeader carries a caller-assigned request id. Storefront proxies
// set it so a cart request can be traced across services.
const RequestIDHeader = "X-Request-Id"

// Inbound ids longer than this are truncated rather than rejected.
const requestIDLengthLimit = 128

type reqIDKeyCtx int

const reqIDKey reqIDKeyCtx = 1

// RequestID tags every request with an id, minting one when the caller
// did not supply one, and echoes it back in the response headers.
func RequestID() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			} else if len(id) > requestIDLengthLimit {
				id = id[:requestIDLengthLimit]
			}

			w.Header().Set(RequestIDHeader, id)
			ctx = context.WithValue(ctx, reqIDKey, id)

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

func ContextRequestID(ctx context.Context) string {
	id, _ := ctx.Value(reqIDKey).(string)
	return id
}
