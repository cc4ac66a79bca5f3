package api

import (
	"net/http"
	"strconv"
	"strings"

	"nexus/internal/auth"
	"nexus/internal/authz"
	"nexus/internal/models"
	"nexus/internal/repo"
)

// GET /servers
func (h *Handler) ListServers(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	servers, err := h.servers.ListByOwner(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, servers)
}

type createServerRequest struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	IPAddress   string  `json:"ip_address"`
	MemoryTotal float64 `json:"memory_total"`
}

func (in *createServerRequest) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errInvalid("name is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return errInvalid("location is required")
	}
	if in.MemoryTotal < 0 {
		return errInvalid("memory_total must not be negative")
	}
	return nil
}

// POST /servers
func (h *Handler) CreateServer(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	var in createServerRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	srv := &models.Server{
		Name:        strings.TrimSpace(in.Name),
		Location:    strings.TrimSpace(in.Location),
		IPAddress:   strings.TrimSpace(in.IPAddress),
		MemoryTotal: in.MemoryTotal,
		OwnerID:     user.ID,
	}
	if err := h.servers.Create(r.Context(), srv); err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, srv)
}

// ownedServer loads a server by id and runs it through the ownership
// guard; foreign and absent ids come back as the same ErrNotFound.
func (h *Handler) ownedServer(r *http.Request) (*models.Server, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return nil, repo.ErrNotFound
	}
	srv, err := h.servers.GetByID(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(auth.IdentityFrom(r), *srv); err != nil {
		return nil, err
	}
	return srv, nil
}

// GET /servers/{id}
func (h *Handler) GetServer(w http.ResponseWriter, r *http.Request) {
	srv, err := h.ownedServer(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, srv)
}

type createMetricRequest struct {
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	NetworkIn   float64 `json:"network_in"`
	NetworkOut  float64 `json:"network_out"`
}

func (in *createMetricRequest) validate() error {
	if in.CPUUsage < 0 || in.CPUUsage > 100 || in.MemoryUsage < 0 || in.MemoryUsage > 100 {
		return errInvalid("cpu_usage and memory_usage must be percentages")
	}
	if in.NetworkIn < 0 || in.NetworkOut < 0 {
		return errInvalid("network values must not be negative")
	}
	return nil
}

// POST /servers/{id}/metrics
func (h *Handler) CreateServerMetric(w http.ResponseWriter, r *http.Request) {
	srv, err := h.ownedServer(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in createMetricRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	metric, err := h.servers.AddMetric(r.Context(), srv, repo.MetricInput{
		CPUUsage:    in.CPUUsage,
		MemoryUsage: in.MemoryUsage,
		NetworkIn:   in.NetworkIn,
		NetworkOut:  in.NetworkOut,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, metric)
}

// GET /servers/{id}/metrics?limit=
func (h *Handler) ListServerMetrics(w http.ResponseWriter, r *http.Request) {
	srv, err := h.ownedServer(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	metrics, err := h.servers.ListMetrics(r.Context(), srv.ID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, metrics)
}
