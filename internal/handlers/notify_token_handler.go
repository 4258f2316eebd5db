package handlers

import (
	"encoding/json"
	"net/http"

	"acheiBack/internal/services"
)

type NotifyTokenHandler struct {
	Service *services.NotifyTokenService
}

func (h *NotifyTokenHandler) RegisterToken(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.RegisterToken(r.Context(), userID, req.Token); err != nil {
		http.Error(w, "Failed to register token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "registered"})
}

func (h *NotifyTokenHandler) RemoveToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	if token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	if err := h.Service.RemoveToken(r.Context(), token); err != nil {
		http.Error(w, "Failed to remove token", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
