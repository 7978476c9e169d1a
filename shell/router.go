package shell

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bitacora-medica/medauth/guard"
)

// Router assembles the application route tree over the given session state
// source. Every authenticated-area route re-evaluates the guards per request,
// so a session change takes effect on the next navigation.
func Router(states guard.StateSource) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(guard.Middleware(states, guard.PreAuth))
		r.Get(guard.RouteLogin, page("login"))
		r.Get(guard.RoutePendingApproval, page("pending-approval"))
	})

	r.Route(guard.RouteDashboard, func(r chi.Router) {
		r.Use(guard.Middleware(states, guard.Protected))
		r.Get("/", page("dashboard"))
		r.Get("/admin", page("admin"))
		r.Get("/patients", page("patients"))
		r.Get("/patients/new", page("patient-form"))
		r.Get("/patients/{id}", patientDetail)
		r.Get("/support", page("support"))
		r.Get("/settings", page("settings"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, guard.RouteDashboard, http.StatusFound)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"page": name})
	}
}

func patientDetail(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"page":       "patient-detail",
		"patient_id": chi.URLParam(r, "id"),
	})
}
