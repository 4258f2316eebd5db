package notify

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/messaging"

	"acheiBack/internal/models"
)

// TokenSource resolves the registered device tokens of a user.
type TokenSource interface {
	TokensByUserID(ctx context.Context, userID int) ([]string, error)
}

// FCMNotifier delivers match alerts as Firebase Cloud Messaging pushes. A user with
// no registered tokens counts as delivered.
type FCMNotifier struct {
	Client *messaging.Client
	Tokens TokenSource
}

func NewFCMNotifier(client *messaging.Client, tokens TokenSource) *FCMNotifier {
	return &FCMNotifier{Client: client, Tokens: tokens}
}

func (n *FCMNotifier) Deliver(ctx context.Context, userID int, summary models.MatchSummary) error {
	tokens, err := n.Tokens.TokensByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch tokens for user %d: %w", userID, err)
	}
	if len(tokens) == 0 {
		return nil
	}

	title := "Possível match encontrado!"
	body := fmt.Sprintf("O item %q pode corresponder ao seu item %q.", summary.CounterpartName, summary.ItemName)

	var lastErr error
	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: map[string]string{
				"item_id":        fmt.Sprintf("%d", summary.ItemID),
				"counterpart_id": fmt.Sprintf("%d", summary.CounterpartID),
				"status":         summary.Status,
				"barcode":        summary.Barcode,
				"score":          fmt.Sprintf("%.2f", summary.Score),
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "match_channel",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Alert: &messaging.ApsAlert{
							Title: title,
							Body:  body,
						},
						Sound: "default",
					},
				},
			},
		}
		if _, err := n.Client.Send(ctx, message); err != nil {
			log.Printf("fcm send to user %d failed: %v", userID, err)
			lastErr = err
		}
	}
	return lastErr
}

// LogNotifier is the fallback sink when FCM is not configured (local development).
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) Deliver(ctx context.Context, userID int, summary models.MatchSummary) error {
	n.Logger.Printf("match alert for user %d: item %d <-> item %d (score %.2f)",
		userID, summary.ItemID, summary.CounterpartID, summary.Score)
	return nil
}
