// Package api is the HTTP surface: route dispatch, request validation
// and response shaping over the auth service and the resource stores.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"nexus/config"
	"nexus/internal/auth"
	"nexus/internal/logs"
	"nexus/internal/middleware"
	"nexus/internal/models"
	"nexus/internal/repo"
)

type Handler struct {
	cfg *config.Config

	auth      *auth.Service
	servers   *repo.ServerStore
	leads     *repo.LeadStore
	files     *repo.FileStore
	hosting   *repo.HostingStore
	alerts    *repo.AlertStore
	templates *repo.TemplateStore
}

func New(cfg *config.Config, authSvc *auth.Service,
	servers *repo.ServerStore, leads *repo.LeadStore, files *repo.FileStore,
	hosting *repo.HostingStore, alerts *repo.AlertStore, templates *repo.TemplateStore) *Handler {
	return &Handler{
		cfg:       cfg,
		auth:      authSvc,
		servers:   servers,
		leads:     leads,
		files:     files,
		hosting:   hosting,
		alerts:    alerts,
		templates: templates,
	}
}

// decodeJSON parses the request body into dst; a malformed body is a
// client error, never a panic.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func pathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// writeError maps domain sentinels to HTTP statuses. Anything
// unexpected is logged and surfaced as a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		models.WriteProblem(w, http.StatusNotFound, "Not Found", "resource not found", nil)
	case errors.Is(err, repo.ErrEmailTaken):
		models.WriteProblem(w, http.StatusBadRequest, "Bad Request", err.Error(), nil)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthorized):
		models.WriteProblem(w, http.StatusUnauthorized, "Unauthorized", "could not validate credentials", nil)
	default:
		logs.Logger.Errorf("reqid=%s internal error: %v", middleware.GetRequestID(r), err)
		models.WriteProblem(w, http.StatusInternalServerError, "Internal Server Error",
			"unexpected server error", nil)
	}
}

func badRequest(w http.ResponseWriter, detail string) {
	models.WriteProblem(w, http.StatusBadRequest, "Bad Request", detail, nil)
}
