package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

type MatchHandler struct {
	Service *services.MatchService
}

// GetMatchesForItem returns the persisted matches for one of the caller's items,
// best score first.
func (h *MatchHandler) GetMatchesForItem(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matches, err := h.Service.GetMatchesForItem(r.Context(), itemID, userID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, services.ErrNotItemOwner) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "Failed to fetch matches", http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []models.MatchView{}
	}
	json.NewEncoder(w).Encode(matches)
}

// PurgeMatches removes every persisted match. Staff only.
func (h *MatchHandler) PurgeMatches(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.PurgeMatches(r.Context())
	if err != nil {
		http.Error(w, "Failed to purge matches", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"deleted": deleted})
}
