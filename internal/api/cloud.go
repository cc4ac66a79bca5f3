package api

import (
	"math"
	"net/http"
	"strings"

	"nexus/internal/auth"
	"nexus/internal/models"
)

// GET /cloud/files?folder=
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	files, err := h.files.ListByOwner(r.Context(), user.ID, r.URL.Query().Get("folder"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusOK, files)
}

type createFileRequest struct {
	Filename     string  `json:"filename"`
	FileType     string  `json:"file_type"`
	FileSize     float64 `json:"file_size"` // MB
	Folder       string  `json:"folder"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func (in *createFileRequest) validate() error {
	if strings.TrimSpace(in.Filename) == "" {
		return errInvalid("filename is required")
	}
	if in.FileSize < 0 {
		return errInvalid("file_size must not be negative")
	}
	return nil
}

// POST /cloud/files — records file metadata; blob upload itself goes
// through the object store, not this API.
func (h *Handler) CreateFile(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	var in createFileRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "malformed JSON body")
		return
	}
	if err := in.validate(); err != nil {
		badRequest(w, err.Error())
		return
	}
	f := &models.CloudFile{
		Filename:     strings.TrimSpace(in.Filename),
		FileType:     strings.TrimSpace(in.FileType),
		FileSize:     in.FileSize,
		Folder:       strings.TrimSpace(in.Folder),
		ThumbnailURL: in.ThumbnailURL,
		OwnerID:      user.ID,
	}
	if err := h.files.Create(r.Context(), f); err != nil {
		writeError(w, r, err)
		return
	}
	models.WriteJSON(w, http.StatusCreated, f)
}

type storageStats struct {
	UsedGB     float64 `json:"used_gb"`
	TotalGB    float64 `json:"total_gb"`
	Percentage float64 `json:"percentage"`
}

const storageQuotaGB = 100

// GET /cloud/storage-stats
func (h *Handler) StorageStats(w http.ResponseWriter, r *http.Request) {
	user := auth.IdentityFrom(r)
	totalMB, err := h.files.TotalSizeMB(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	usedGB := totalMB / 1024
	models.WriteJSON(w, http.StatusOK, storageStats{
		UsedGB:     round2(usedGB),
		TotalGB:    storageQuotaGB,
		Percentage: round2(usedGB / storageQuotaGB * 100),
	})
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
