package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

type CategoryHandler struct {
	Service *services.CategoryService
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateCategory(r.Context(), category)
	if err != nil {
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CategoryHandler) GetAllCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(categories)
}

func (h *CategoryHandler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	category, err := h.Service.GetCategoryByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(category)
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	category.ID = id
	updated, err := h.Service.UpdateCategory(r.Context(), category)
	if err != nil {
		http.Error(w, "Failed to update", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type LocationHandler struct {
	Service *services.LocationService
}

func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var location models.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateLocation(r.Context(), location)
	if err != nil {
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *LocationHandler) GetAllLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.Service.GetAllLocations(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(locations)
}

func (h *LocationHandler) GetLocationByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	location, err := h.Service.GetLocationByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Location not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(location)
}

func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	var location models.Location
	if err := json.NewDecoder(r.Body).Decode(&location); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	location.ID = id
	updated, err := h.Service.UpdateLocation(r.Context(), location)
	if err != nil {
		http.Error(w, "Failed to update", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteLocation(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ColorHandler struct {
	Service *services.ColorService
}

func (h *ColorHandler) CreateColor(w http.ResponseWriter, r *http.Request) {
	var color models.Color
	if err := json.NewDecoder(r.Body).Decode(&color); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateColor(r.Context(), color)
	if err != nil {
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *ColorHandler) GetAllColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.Service.GetAllColors(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(colors)
}

func (h *ColorHandler) GetColorByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	color, err := h.Service.GetColorByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Color not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(color)
}

func (h *ColorHandler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	var color models.Color
	if err := json.NewDecoder(r.Body).Decode(&color); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	color.ID = id
	updated, err := h.Service.UpdateColor(r.Context(), color)
	if err != nil {
		http.Error(w, "Failed to update", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *ColorHandler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteColor(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type BrandHandler struct {
	Service *services.BrandService
}

func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var brand models.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateBrand(r.Context(), brand)
	if err != nil {
		http.Error(w, "Failed to create", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *BrandHandler) GetAllBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.GetAllBrands(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(brands)
}

func (h *BrandHandler) GetBrandByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	brand, err := h.Service.GetBrandByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Brand not found", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(brand)
}

func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	var brand models.Brand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}
	brand.ID = id
	updated, err := h.Service.UpdateBrand(r.Context(), brand)
	if err != nil {
		http.Error(w, "Failed to update", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteBrand(r.Context(), id); err != nil {
		http.Error(w, "Failed to delete", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
