package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Version is stamped at build time via -ldflags "-X reelhouse/handlers.Version=...".
var Version = "dev"

type VersionHandler struct{}

func NewVersionHandler() *VersionHandler {
	return &VersionHandler{}
}

func (h *VersionHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/version", h.Get).Methods(http.MethodGet)
}

func (h *VersionHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": Version})
}
