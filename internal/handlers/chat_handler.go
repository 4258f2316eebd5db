package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"acheiBack/internal/models"
	"acheiBack/internal/services"
)

type ChatHandler struct {
	ChatService    *services.ChatService
	MessageService *services.MessageService
}

func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ItemID int `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	chat, err := h.ChatService.CreateChat(r.Context(), req.ItemID, userID)
	if err != nil {
		if errors.Is(err, models.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to create chat", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(chat)
}

func (h *ChatHandler) GetChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	chats, err := h.ChatService.GetChatsByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch chats", http.StatusInternalServerError)
		return
	}
	if chats == nil {
		chats = []models.Chat{}
	}
	json.NewEncoder(w).Encode(chats)
}

func (h *ChatHandler) GetChatByID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	userID, _ := r.Context().Value("user_id").(int)

	chat, err := h.ChatService.GetChatByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Chat not found", http.StatusNotFound)
		return
	}
	if chat.User1ID != userID && chat.User2ID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	json.NewEncoder(w).Encode(chat)
}

func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(r.URL.Query().Get(":id"))
	userID, _ := r.Context().Value("user_id").(int)

	if err := h.ChatService.DeleteChat(r.Context(), id, userID); err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			http.Error(w, "Chat not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete chat", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChatHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	chatID, _ := strconv.Atoi(r.URL.Query().Get(":chatId"))
	userID, _ := r.Context().Value("user_id").(int)

	messages, err := h.MessageService.GetMessagesForChat(r.Context(), chatID, userID)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			http.Error(w, "Chat not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch messages", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	json.NewEncoder(w).Encode(messages)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ChatID int    `json:"chat_id"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	msg, err := h.MessageService.SendMessage(r.Context(), req.ChatID, userID, req.Text)
	if err != nil {
		if errors.Is(err, models.ErrChatNotFound) {
			http.Error(w, "Chat not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, models.ErrMessageNotFound) {
			http.Error(w, "Message text is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":messageId")
	if err := h.MessageService.DeleteMessage(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrMessageNotFound) {
			http.Error(w, "Message not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete message", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
