package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

type ItemHandler struct {
	Service *services.ItemService
}

func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	if item.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	item.UserID = &userID

	created, err := h.Service.CreateItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, models.ErrInvalidItemStatus) {
			http.Error(w, "Status must be lost or found", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrItemNameTooLong) {
			http.Error(w, "Name must be at most 100 characters", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrItemDescTooLong) {
			http.Error(w, "Description must be at most 250 characters", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to create item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ItemHandler) GetItemByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	item, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	userID, _ := r.Context().Value("user_id").(int)
	isStaff, _ := r.Context().Value("is_staff").(bool)

	existing, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	if !isStaff && (existing.UserID == nil || *existing.UserID != userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var item models.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	item.ID = id
	item.UserID = existing.UserID

	updated, err := h.Service.UpdateItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, models.ErrInvalidItemStatus) {
			http.Error(w, "Status must be lost or found", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrItemNameTooLong) {
			http.Error(w, "Name must be at most 100 characters", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrItemDescTooLong) {
			http.Error(w, "Description must be at most 250 characters", http.StatusBadRequest)
			return
		}
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update item", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	userID, _ := r.Context().Value("user_id").(int)
	isStaff, _ := r.Context().Value("is_staff").(bool)

	existing, err := h.Service.GetItemByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Item not found", http.StatusNotFound)
		return
	}
	if !isStaff && (existing.UserID == nil || *existing.UserID != userID) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteItem(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) GetLostItems(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.StatusLost, false)
}

func (h *ItemHandler) GetFoundItems(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.StatusFound, false)
}

func (h *ItemHandler) GetMyLostItems(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.StatusLost, true)
}

func (h *ItemHandler) GetMyFoundItems(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.StatusFound, true)
}

func (h *ItemHandler) listByStatus(w http.ResponseWriter, r *http.Request, status string, mine bool) {
	f := models.ItemFilter{
		Status:     status,
		CategoryID: intParam(r, "category_id"),
		LocationID: intParam(r, "location_id"),
		ColorID:    intParam(r, "color_id"),
		BrandID:    intParam(r, "brand_id"),
		Query:      r.URL.Query().Get("q"),
	}
	f.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))

	if mine {
		userID, ok := r.Context().Value("user_id").(int)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		f.UserID = &userID
	}

	page, err := h.Service.ListItems(r.Context(), f)
	if err != nil {
		http.Error(w, "Failed to fetch items", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(page)
}

func intParam(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
