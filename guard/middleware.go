package guard

import (
	"net/http"

	"github.com/bitacora-medica/medauth/session"
)

// StateSource supplies the session snapshot a guard evaluates against.
// [session.Store] satisfies it.
type StateSource interface {
	Snapshot() session.State
}

// Middleware adapts a pure guard to net/http: requests the guard denies are
// answered with a redirect to the route the guard chose.
func Middleware(states StateSource, eval func(session.State) Decision) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := eval(states.Snapshot())
			if !d.Allow {
				http.Redirect(w, r, d.RedirectTo, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
