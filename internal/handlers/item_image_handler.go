package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

const maxImageSize = 10 << 20 // 10 MB

type ItemImageHandler struct {
	Service *services.ItemImageService
}

func (h *ItemImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(r.URL.Query().Get(":id"))

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		http.Error(w, "Failed to read image", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	img, err := h.Service.AddImage(r.Context(), itemID, data, header.Filename, contentType)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, models.ErrImageLimitReached) {
			http.Error(w, "Item already has the maximum number of images", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to upload image", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}

func (h *ItemImageHandler) GetImagesByItemID(w http.ResponseWriter, r *http.Request) {
	itemID, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	images, err := h.Service.GetImagesByItemID(r.Context(), itemID)
	if err != nil {
		http.Error(w, "Failed to fetch images", http.StatusInternalServerError)
		return
	}
	if images == nil {
		images = []models.ItemImage{}
	}
	json.NewEncoder(w).Encode(images)
}

func (h *ItemImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	if err := h.Service.DeleteImage(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrImageNotFound) {
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete image", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
