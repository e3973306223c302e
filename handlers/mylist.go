package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"reelhouse/models"
	"reelhouse/services/preferences"
)

type listService interface {
	Check(userID, movieID int64) (bool, error)
	Add(userID int64, input models.PreferenceUpsert) (models.PreferenceRecord, error)
	Remove(userID, movieID int64) error
	Entries(userID int64) ([]models.PreferenceRecord, error)
}

var _ listService = (*preferences.List)(nil)

// MyListHandler serves the per-user "my list" relation. Responses carry the
// current membership state (in_list) so the UI can reconcile after conflicts.
type MyListHandler struct {
	Service listService
}

func NewMyListHandler(service listService) *MyListHandler {
	return &MyListHandler{Service: service}
}

// Register mounts the my-list routes on the router.
func (h *MyListHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/users/{userID}/list", h.List).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userID}/list", h.Add).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{userID}/list/{movieID}", h.Check).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userID}/list/{movieID}", h.Remove).Methods(http.MethodDelete)
}

func (h *MyListHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := h.ids(w, r)
	if !ok {
		return
	}

	inList, err := h.Service.Check(userID, movieID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to check list",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"in_list": inList})
}

func (h *MyListHandler) Add(w http.ResponseWriter, r *http.Request) {
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
		switch {
		case errors.Is(err, preferences.ErrAlreadyInList):
			writeJSON(w, http.StatusConflict, map[string]any{
				"message": "Movie is already in your list",
				"in_list": true,
			})
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"message": "Validation failed",
				"errors":  verr.Fields,
			})
		default:
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Failed to add movie to list",
				"error":   err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Movie added to your list",
		"in_list": true,
		"item":    record,
	})
}

func (h *MyListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, movieID, ok := h.ids(w, r)
	if !ok {
		return
	}

	err := h.Service.Remove(userID, movieID)
	switch {
	case errors.Is(err, preferences.ErrNotInList):
		writeJSON(w, http.StatusNotFound, map[string]any{
			"message": "Movie not found in your list",
			"in_list": false,
		})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to remove movie from list",
			"error":   err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Movie removed from your list",
			"in_list": false,
		})
	}
}

func (h *MyListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	records, err := h.Service.Entries(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "Failed to fetch list",
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"movies": records})
}

func (h *MyListHandler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := pathID(r, "userID")
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid user id"})
		return 0, false
	}
	return userID, true
}

func (h *MyListHandler) ids(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
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
