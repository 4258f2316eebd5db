package services

import (
	"context"
	"errors"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
)

var ErrNotItemOwner = errors.New("item does not belong to the user")

// MatchService exposes persisted matches to the HTTP surface.
type MatchService struct {
	MatchRepo *repositories.MatchRepository
	ItemRepo  *repositories.ItemRepository
}

// GetMatchesForItem returns the recorded matches of an item owned by the requesting
// user, counterpart-side data shaped for display.
func (s *MatchService) GetMatchesForItem(ctx context.Context, itemID, userID int) ([]models.MatchView, error) {
	item, err := s.ItemRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID == nil || *item.UserID != userID {
		return nil, ErrNotItemOwner
	}

	matches, err := s.MatchRepo.ListForItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views := make([]models.MatchView, 0, len(matches))
	for _, m := range matches {
		other, err := s.ItemRepo.GetItemByID(ctx, m.Other(itemID))
		if err != nil {
			if errors.Is(err, models.ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, models.MatchView{
			ID:          other.ID,
			Barcode:     other.Barcode(),
			Status:      other.Status,
			Name:        other.Name,
			Description: other.Description,
			Score:       m.Score,
		})
	}
	return views, nil
}

// PurgeMatches clears all recorded matches.
func (s *MatchService) PurgeMatches(ctx context.Context) (int64, error) {
	return s.MatchRepo.PurgeAll(ctx)
}
