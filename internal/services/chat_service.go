package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
)

type ChatService struct {
	ChatRepo    *repositories.ChatRepository
	MessageRepo *repositories.MessageRepository
	ItemRepo    *repositories.ItemRepository
}

// CreateChat opens a conversation between the caller and the owner of an item.
// Reuses the existing chat when the pair already talked about this item.
func (s *ChatService) CreateChat(ctx context.Context, itemID, userID int) (models.Chat, error) {
	item, err := s.ItemRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return models.Chat{}, err
	}
	if item.UserID == nil {
		return models.Chat{}, models.ErrUserNotFound
	}

	id, err := s.ChatRepo.CreateChat(ctx, models.Chat{
		ItemID:  itemID,
		User1ID: userID,
		User2ID: *item.UserID,
	})
	if err != nil {
		return models.Chat{}, err
	}
	return s.ChatRepo.GetChatByID(ctx, id)
}

func (s *ChatService) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	return s.ChatRepo.GetChatByID(ctx, id)
}

func (s *ChatService) GetChatsByUserID(ctx context.Context, userID int) ([]models.Chat, error) {
	return s.ChatRepo.GetChatsByUserID(ctx, userID)
}

func (s *ChatService) DeleteChat(ctx context.Context, id, userID int) error {
	chat, err := s.ChatRepo.GetChatByID(ctx, id)
	if err != nil {
		return err
	}
	if chat.User1ID != userID && chat.User2ID != userID {
		return models.ErrChatNotFound
	}
	return s.ChatRepo.DeleteChat(ctx, id)
}

type MessageService struct {
	MessageRepo *repositories.MessageRepository
	ChatRepo    *repositories.ChatRepository
}

func (s *MessageService) SendMessage(ctx context.Context, chatID, senderID int, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, models.ErrMessageNotFound
	}

	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}

	receiverID := chat.User1ID
	if senderID == chat.User1ID {
		receiverID = chat.User2ID
	} else if senderID != chat.User2ID {
		return models.Message{}, models.ErrChatNotFound
	}

	msg := models.Message{
		ID:         uuid.New().String(),
		ChatID:     chatID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := s.MessageRepo.CreateMessage(ctx, msg); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

func (s *MessageService) GetMessagesForChat(ctx context.Context, chatID, userID int) ([]models.Message, error) {
	chat, err := s.ChatRepo.GetChatByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.User1ID != userID && chat.User2ID != userID {
		return nil, models.ErrChatNotFound
	}
	return s.MessageRepo.GetMessagesForChat(ctx, chatID)
}

func (s *MessageService) DeleteMessage(ctx context.Context, id string) error {
	return s.MessageRepo.DeleteMessage(ctx, id)
}
