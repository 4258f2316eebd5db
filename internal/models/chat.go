package models

import "time"

// Chat links two users discussing one item.
type Chat struct {
	ID      int `json:"id"`
	ItemID  int `json:"item_id"`
	User1ID int `json:"user1_id"`
	User2ID int `json:"user2_id"`
	User1   struct {
		FirstName      string  `json:"first_name"`
		ProfilePicture *string `json:"foto,omitempty"`
	} `json:"user1"`
	User2 struct {
		FirstName      string  `json:"first_name"`
		ProfilePicture *string `json:"foto,omitempty"`
	} `json:"user2"`
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Message struct {
	ID         string    `json:"id"`
	ChatID     int       `json:"chat_id"`
	SenderID   int       `json:"sender_id"`
	ReceiverID int       `json:"receiver_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotifyToken is a registered FCM device token for a user.
type NotifyToken struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}
