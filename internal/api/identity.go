package api

import (
	"net/http"
	"net/mail"
	"strings"

	"nexus/internal/auth"
	"nexus/internal/models"
)

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (in *registerRequest) validate() error {
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return errInvalid("a valid email is required")
	}
	if strings.TrimSpace(in.FullName) == "" {
		return errInvalid("full_name is required")
	}
	if len(in.Password) < 8 {
		return errInvalid("password must be at least 8 characters")
	}
	return nil
}

type errInvalid string

func (e errInvalid) Error() string { return string(e) }

// POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	user, err := h.auth.Register(r.Context(), in.Email, in.FullName, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, user)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /token — form-encoded username/password, same shape as an
// OAuth2 password grant.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequest(w, "bad form")
		return
	}
	email := r.FormValue("username")
	password := r.FormValue("password")
	if email == "" || password == "" {
		badRequest(w, "username and password are required")
		return
	}
	token, err := h.auth.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	models.WriteJSON(w, http.StatusOK, auth.IdentityFrom(r))
}

// GET /
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	models.WriteJSON(w, http.StatusOK, map[string]string{
		"app":     "Cloud Nexus API",
		"version": "1.0.0",
		"status":  "operational",
	})
}
