package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"nexus/internal/auth"
)

// RegisterRoutes installs the public routes and an authenticated
// subrouter guarded by the bearer-token middleware.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Public.
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/token", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/hosting/plans", h.ListPlans).Methods(http.MethodGet)
	r.HandleFunc("/templates", h.ListTemplates).Methods(http.MethodGet)

	// Everything below requires a valid bearer token.
	authed := r.NewRoute().Subrouter()
	authed.Use(auth.RequireAuth(h.auth))

	authed.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	authed.HandleFunc("/dashboard/stats", h.DashboardStats).Methods(http.MethodGet)

	authed.HandleFunc("/servers", h.ListServers).Methods(http.MethodGet)
	authed.HandleFunc("/servers", h.CreateServer).Methods(http.MethodPost)
	authed.HandleFunc("/servers/{id:[0-9]+}", h.GetServer).Methods(http.MethodGet)
	authed.HandleFunc("/servers/{id:[0-9]+}/metrics", h.CreateServerMetric).Methods(http.MethodPost)
	authed.HandleFunc("/servers/{id:[0-9]+}/metrics", h.ListServerMetrics).Methods(http.MethodGet)

	authed.HandleFunc("/crm/leads", h.ListLeads).Methods(http.MethodGet)
	authed.HandleFunc("/crm/leads", h.CreateLead).Methods(http.MethodPost)
	authed.HandleFunc("/crm/leads/{id:[0-9]+}", h.PatchLead).Methods(http.MethodPatch)

	authed.HandleFunc("/cloud/files", h.ListFiles).Methods(http.MethodGet)
	authed.HandleFunc("/cloud/files", h.CreateFile).Methods(http.MethodPost)
	authed.HandleFunc("/cloud/storage-stats", h.StorageStats).Methods(http.MethodGet)

	authed.HandleFunc("/hosting/orders", h.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/hosting/orders", h.ListOrders).Methods(http.MethodGet)

	authed.HandleFunc("/alerts", h.ListAlerts).Methods(http.MethodGet)
}
