package repositories

import (
	"context"
	"database/sql"

	"acheiBack/internal/models"
)

type MessageRepository struct {
	Db *sql.DB
}

func (r *MessageRepository) CreateMessage(ctx context.Context, msg models.Message) error {
	_, err := r.Db.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, receiver_id, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.ChatID, msg.SenderID, msg.ReceiverID, msg.Text, msg.CreatedAt)
	return err
}

func (r *MessageRepository) GetMessagesForChat(ctx context.Context, chatID int) ([]models.Message, error) {
	rows, err := r.Db.QueryContext(ctx, `
		SELECT id, chat_id, sender_id, receiver_id, text, created_at
		FROM messages
		WHERE chat_id = $1
		ORDER BY created_at`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.ReceiverID, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *MessageRepository) DeleteMessage(ctx context.Context, id string) error {
	res, err := r.Db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrMessageNotFound
	}
	return nil
}
