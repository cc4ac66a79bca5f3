package api

import (
	"net/http"

	"nexus/internal/models"
)

// GET /alerts?status= — alerts are global, only identity presence is
// required, no ownership check.
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.List(r.Context(), r.URL.Query().Get("status"), 10)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, alerts)
}

// GET /templates?category= — public catalog.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.templates.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, tpls)
}
