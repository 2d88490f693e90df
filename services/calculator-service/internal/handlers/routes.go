package handlers

import (
	"net/http"

	"github.com/md-rashed-zaman/costcalc/libs/httpx"
)

type Routes struct {
	Auth         *AuthHandler
	Items        *ItemHandler
	Appointments *AppointmentHandler
	// RequireAdmin guards catalog edits and appointment administration.
	RequireAdmin httpx.Middleware
	// PublicWrite, when set, wraps the unauthenticated POST endpoints.
	PublicWrite httpx.Middleware
}

// Register mounts the /api routes on mux and a JSON 404 for anything unmatched.
func (rt Routes) Register(mux *http.ServeMux) {
	admin := func(h http.HandlerFunc) http.Handler { return httpx.Chain(h, rt.RequireAdmin) }
	public := func(h http.HandlerFunc) http.Handler { return httpx.Chain(h, rt.PublicWrite) }

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Handle("POST /api/auth/login", public(rt.Auth.Login))
	mux.HandleFunc("POST /api/auth/logout", rt.Auth.Logout)

	mux.HandleFunc("GET /api/items", rt.Items.List)
	mux.HandleFunc("GET /api/items/{id}", rt.Items.Get)
	mux.Handle("POST /api/items", admin(rt.Items.Create))
	mux.Handle("PUT /api/items/{id}", admin(rt.Items.Update))
	mux.Handle("DELETE /api/items/{id}", admin(rt.Items.Delete))

	mux.Handle("POST /api/calculate", public(Calculate))

	mux.Handle("POST /api/appointments", public(rt.Appointments.Create))
	mux.Handle("GET /api/appointments", admin(rt.Appointments.List))
	mux.Handle("GET /api/appointments/{id}", admin(rt.Appointments.Get))
	mux.Handle("PUT /api/appointments/{id}", admin(rt.Appointments.Update))
	mux.Handle("DELETE /api/appointments/{id}", admin(rt.Appointments.Delete))

	mux.HandleFunc("/", httpx.NotFound)
}
