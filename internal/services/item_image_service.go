package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
	"acheiBack/utils"
)

type ItemImageService struct {
	ImageRepo *repositories.ItemImageRepository
	ItemRepo  *repositories.ItemRepository
	Storage   *utils.Storage
}

// AddImage uploads a photo for an item and records its public URL. Items are
// capped at two photos each.
func (s *ItemImageService) AddImage(ctx context.Context, itemID int, data []byte, originalName, contentType string) (models.ItemImage, error) {
	if _, err := s.ItemRepo.GetItemByID(ctx, itemID); err != nil {
		return models.ItemImage{}, err
	}

	count, err := s.ImageRepo.CountForItem(ctx, itemID)
	if err != nil {
		return models.ItemImage{}, err
	}
	if count >= repositories.MaxImagesPerItem {
		return models.ItemImage{}, models.ErrImageLimitReached
	}

	ext := filepath.Ext(originalName)
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	url, err := s.Storage.UploadFile(data, fileName, fmt.Sprintf("items/%d", itemID), contentType)
	if err != nil {
		return models.ItemImage{}, err
	}

	return s.ImageRepo.CreateImage(ctx, models.ItemImage{ItemID: itemID, ImageURL: url})
}

func (s *ItemImageService) GetImagesByItemID(ctx context.Context, itemID int) ([]models.ItemImage, error) {
	return s.ImageRepo.GetImagesByItemID(ctx, itemID)
}

func (s *ItemImageService) DeleteImage(ctx context.Context, id int) error {
	return s.ImageRepo.DeleteImage(ctx, id)
}

type NotifyTokenService struct {
	TokenRepo *repositories.NotifyTokenRepository
}

func (s *NotifyTokenService) RegisterToken(ctx context.Context, userID int, token string) error {
	return s.TokenRepo.InsertToken(ctx, userID, token)
}

func (s *NotifyTokenService) RemoveToken(ctx context.Context, token string) error {
	return s.TokenRepo.DeleteToken(ctx, token)
}
