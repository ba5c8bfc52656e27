package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/giftrove/giftrove-server/api/web"
)

// Panics converts panics in the handler chain into errors so the Errors
// middleware can log them and answer with a generic 500.
func Panics() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					trace := debug.Stack()
					err = fmt.Errorf("PANIC [%v] TRACE[%s]", rec, string(trace))
				}
			}()

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
