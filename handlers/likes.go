package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"reelhouse/models"
	"reelhouse/services/preferences"
)

type likesService interface {
	Check(userID, movieID int64) (bool, error)
	Add(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error)
	Remove(userID, movieID int64) error
	List(userID int64) ([]models.PreferenceRecord, error)
}

var _ likesService = (*preferences.Likes)(nil)

// LikesHandler serves the per-user like relation.
type LikesHandler struct {
	Service likesService
}

func NewLikesHandler(service likesService) *LikesHandler {
	return &LikesHandler{Service: service}
}

// Register mounts the like routes on the router.
func (h *LikesHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/users/{userID}/likes", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userID}/likes", h.Add).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{userID}/likes/{movieID}", h.Check).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userID}/likes/{movieID}", h.Remove).Methods(http.MethodDelete)
}

func (h *LikesHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := h.ids(w, r)
	if !ok {
		return
	}

	liked, err := h.Service.Check(userID, movieID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to check like",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"is_liked": liked})
}

func (h *LikesHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var body models.PreferenceUpsert
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return
	}

	record, err := h.Service.Add(userID, body)
	if err != nil {
		var verr *preferences.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to like movie",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Movie liked successfully",
		"like":    record,
	})
}

func (h *LikesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := h.ids(w, r)
	if !ok {
		return
	}

	err := h.Service.Remove(userID, movieID)
	switch {
	case errors.Is(err, preferences.ErrNotLiked):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Movie was not liked"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to unlike movie",
			"error":   err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]string{"message": "Movie unliked successfully"})
	}
}

func (h *LikesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	records, err := h.Service.List(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to fetch liked movies",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"likes": records})
}

func (h *LikesHandler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(r, "userID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user id"})
		return 0, false
	}
	return userID, true
}

func (h *LikesHandler) ids(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	userID, ok := h.userID(w, r)
	if !ok {
		return 0, 0, false
	}
	movieID, ok := pathID(r, "movieID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid movie id"})
		return 0, 0, false
	}
	return userID, movieID, true
}
