package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"acheiBack/internal/models"
)

func TestValidateItemLengthLimits(t *testing.T) {
	base := models.Item{Name: "Casio watch", Status: models.StatusLost}

	t.Run("within limits", func(t *testing.T) {
		item := base
		item.Name = strings.Repeat("n", models.MaxItemNameLen)
		item.Description = strings.Repeat("d", models.MaxItemDescLen)
		if err := validateItem(item); err != nil {
			t.Fatalf("expected item at the limits to pass, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		item := base
		item.Name = strings.Repeat("n", models.MaxItemNameLen+1)
		if err := validateItem(item); !errors.Is(err, models.ErrItemNameTooLong) {
			t.Fatalf("expected ErrItemNameTooLong, got %v", err)
		}
	})

	t.Run("description too long", func(t *testing.T) {
		item := base
		item.Description = strings.Repeat("d", models.MaxItemDescLen+1)
		if err := validateItem(item); !errors.Is(err, models.ErrItemDescTooLong) {
			t.Fatalf("expected ErrItemDescTooLong, got %v", err)
		}
	})

	t.Run("limits count runes not bytes", func(t *testing.T) {
		item := base
		item.Name = strings.Repeat("ç", models.MaxItemNameLen)
		if err := validateItem(item); err != nil {
			t.Fatalf("expected multibyte name at the limit to pass, got %v", err)
		}
	})
}

func TestCreateItemRejectsOversizedFields(t *testing.T) {
	s := &ItemService{}

	_, err := s.CreateItem(context.Background(), models.Item{
		Name:   strings.Repeat("n", models.MaxItemNameLen+1),
		Status: models.StatusLost,
	})
	if !errors.Is(err, models.ErrItemNameTooLong) {
		t.Fatalf("expected ErrItemNameTooLong, got %v", err)
	}

	_, err = s.CreateItem(context.Background(), models.Item{
		Name:        "wallet",
		Description: strings.Repeat("d", models.MaxItemDescLen+1),
		Status:      models.StatusFound,
	})
	if !errors.Is(err, models.ErrItemDescTooLong) {
		t.Fatalf("expected ErrItemDescTooLong, got %v", err)
	}
}

func TestUpdateItemRejectsOversizedFields(t *testing.T) {
	s := &ItemService{}

	_, err := s.UpdateItem(context.Background(), models.Item{
		ID:     1,
		Name:   strings.Repeat("n", models.MaxItemNameLen+1),
		Status: models.StatusLost,
	})
	if !errors.Is(err, models.ErrItemNameTooLong) {
		t.Fatalf("expected ErrItemNameTooLong, got %v", err)
	}
}
