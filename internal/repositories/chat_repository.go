package repositories

import (
	"context"
	"database/sql"
	"errors"

	"acheiBack/internal/models"
)

type ChatRepository struct {
	Db *sql.DB
}

// CreateChat returns the existing chat id when the two users already discuss the
// item, otherwise inserts a new chat.
func (r *ChatRepository) CreateChat(ctx context.Context, chat models.Chat) (int, error) {
	var chatID int
	err := r.Db.QueryRowContext(ctx, `
		SELECT id FROM chats
		WHERE item_id = $1
		  AND ((user1_id = $2 AND user2_id = $3) OR (user1_id = $3 AND user2_id = $2))`,
		chat.ItemID, chat.User1ID, chat.User2ID,
	).Scan(&chatID)
	if err == nil {
		return chatID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = r.Db.QueryRowContext(ctx,
		`INSERT INTO chats (item_id, user1_id, user2_id) VALUES ($1, $2, $3) RETURNING id`,
		chat.ItemID, chat.User1ID, chat.User2ID,
	).Scan(&chatID)
	if err != nil {
		return 0, err
	}
	return chatID, nil
}

func (r *ChatRepository) GetChatByID(ctx context.Context, id int) (models.Chat, error) {
	var chat models.Chat
	err := r.Db.QueryRowContext(ctx,
		`SELECT id, item_id, user1_id, user2_id, created_at FROM chats WHERE id = $1`, id,
	).Scan(&chat.ID, &chat.ItemID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Chat{}, models.ErrChatNotFound
		}
		return models.Chat{}, err
	}
	return chat, nil
}

func (r *ChatRepository) GetChatsByUserID(ctx context.Context, userID int) ([]models.Chat, error) {
	const query = `
WITH last_messages AS (
    SELECT m.chat_id, m.text, m.created_at
    FROM messages m
    JOIN (
        SELECT chat_id, MAX(created_at) AS max_created
        FROM messages
        GROUP BY chat_id
    ) t ON t.chat_id = m.chat_id AND t.max_created = m.created_at
)
SELECT c.id, c.item_id,
       c.user1_id, u1.first_name, u1.profile_picture,
       c.user2_id, u2.first_name, u2.profile_picture,
       COALESCE(lm.text, '') AS last_message,
       COALESCE(lm.created_at, c.created_at) AS last_message_at,
       c.created_at
FROM chats c
JOIN users u1 ON c.user1_id = u1.id
JOIN users u2 ON c.user2_id = u2.id
LEFT JOIN last_messages lm ON lm.chat_id = c.id
WHERE c.user1_id = $1 OR c.user2_id = $1
ORDER BY last_message_at DESC`

	rows, err := r.Db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []models.Chat
	for rows.Next() {
		var chat models.Chat
		err := rows.Scan(
			&chat.ID, &chat.ItemID,
			&chat.User1ID, &chat.User1.FirstName, &chat.User1.ProfilePicture,
			&chat.User2ID, &chat.User2.FirstName, &chat.User2.ProfilePicture,
			&chat.LastMessage, &chat.LastMessageAt,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *ChatRepository) DeleteChat(ctx context.Context, id int) error {
	_, err := r.Db.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	return err
}
