package services

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
)

// MatchScheduler is the matching subsystem surface the item flow depends on.
type MatchScheduler interface {
	Schedule(ctx context.Context, itemID int) error
}

type ItemService struct {
	ItemRepo *repositories.ItemRepository
	Cache    *repositories.CandidateCache
	Matcher  MatchScheduler
	ErrorLog *log.Logger
}

func (s *ItemService) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if err := validateItem(item); err != nil {
		return models.Item{}, err
	}
	created, err := s.ItemRepo.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, err
	}
	full, err := s.ItemRepo.GetItemByID(ctx, created.ID)
	if err != nil {
		return models.Item{}, err
	}
	s.afterWrite(full)
	return full, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	if err := validateItem(item); err != nil {
		return models.Item{}, err
	}
	updated, err := s.ItemRepo.UpdateItem(ctx, item)
	if err != nil {
		return models.Item{}, err
	}
	s.afterWrite(updated)
	return updated, nil
}

func validateItem(item models.Item) error {
	if !models.ValidStatus(item.Status) {
		return models.ErrInvalidItemStatus
	}
	if utf8.RuneCountInString(item.Name) > models.MaxItemNameLen {
		return models.ErrItemNameTooLong
	}
	if utf8.RuneCountInString(item.Description) > models.MaxItemDescLen {
		return models.ErrItemDescTooLong
	}
	return nil
}

// afterWrite invalidates the candidate cache and schedules a match job. Both happen
// off the request goroutine; scheduling a job must never fail the HTTP response.
func (s *ItemService) afterWrite(item models.Item) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.Cache != nil {
			s.Cache.Invalidate(ctx, item.Status, item.CategoryID, item.LocationID)
		}
		if s.Matcher == nil {
			return
		}
		if err := s.Matcher.Schedule(ctx, item.ID); err != nil && s.ErrorLog != nil {
			s.ErrorLog.Printf("schedule match job for item %d: %v", item.ID, err)
		}
	}()
}

func (s *ItemService) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	return s.ItemRepo.GetItemByID(ctx, id)
}

func (s *ItemService) DeleteItem(ctx context.Context, id int) error {
	return s.ItemRepo.DeleteItem(ctx, id)
}

func (s *ItemService) ListItems(ctx context.Context, f models.ItemFilter) (models.ItemPage, error) {
	return s.ItemRepo.ListItems(ctx, f)
}
