// Package owner resolves which identity a cart request acts for: an
// authenticated host (session user) or an anonymous guest (browser token).
package owner

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/giftrove/giftrove-server/api/web"
)

// SessionKey holds the authenticated host id inside the scs session. The
// login flow lives in an external service that shares the session store;
// this server only reads the value.
const SessionKey = "host_id"

// Identity carries both raw identity values attached to a request. Both
// may be present at once: that is the signal that a guest has just
// authenticated and their cart should be merged.
type Identity struct {
	HostID  string
	GuestID string
}

// Owner is the canonical single owner of a cart: exactly one field set.
type Owner struct {
	HostID  string
	GuestID string
}

// Resolve reads the host id from the session and pairs it with the
// client-supplied guest browser id.
func Resolve(ctx context.Context, session *scs.SessionManager, guestID string) Identity {
	return Identity{
		HostID:  session.GetString(ctx, SessionKey),
		GuestID: guestID,
	}
}

// Owner collapses the identity to a single owner. The host wins when both
// values are present.
func (id Identity) Owner() Owner {
	if id.HostID != "" {
		return Owner{HostID: id.HostID}
	}
	return Owner{GuestID: id.GuestID}
}

// Zero reports whether no owner could be resolved. Callers must answer
// such requests with a 401.
func (id Identity) Zero() bool {
	return id.HostID == "" && id.GuestID == ""
}

// NeedsMerge reports whether a previously anonymous guest is now
// authenticated, which is the only trigger for the guest-to-host merge.
func (id Identity) NeedsMerge() bool {
	return id.HostID != "" && id.GuestID != ""
}

// LoadAndSave adapts the scs session middleware to the handler chain so
// every request sees its session state in context.
func LoadAndSave(session *scs.SessionManager) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			var err error
			sh := session.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				err = handler(r.Context(), w, r)
			}))
			sh.ServeHTTP(w, r)
			return err
		}
		return h
	}
	return m
}
