package repositories

import (
	"context"
	"database/sql"
	"errors"

	"acheiBack/internal/models"
)

// MaxImagesPerItem caps the number of stored images per item.
const MaxImagesPerItem = 2

type ItemImageRepository struct {
	DB *sql.DB
}

func (r *ItemImageRepository) CountForItem(ctx context.Context, itemID int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item_images WHERE item_id = $1`, itemID).Scan(&count)
	return count, err
}

func (r *ItemImageRepository) CreateImage(ctx context.Context, img models.ItemImage) (models.ItemImage, error) {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO item_images (item_id, image_url) VALUES ($1, $2) RETURNING id`,
		img.ItemID, img.ImageURL,
	).Scan(&img.ID)
	if err != nil {
		return models.ItemImage{}, err
	}
	return img, nil
}

func (r *ItemImageRepository) GetImagesByItemID(ctx context.Context, itemID int) ([]models.ItemImage, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, item_id, image_url FROM item_images WHERE item_id = $1 ORDER BY id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []models.ItemImage
	for rows.Next() {
		var img models.ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.ImageURL); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ItemImageRepository) DeleteImage(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM item_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrImageNotFound
	}
	return nil
}

func (r *ItemImageRepository) GetImageByID(ctx context.Context, id int) (models.ItemImage, error) {
	var img models.ItemImage
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, item_id, image_url FROM item_images WHERE id = $1`, id,
	).Scan(&img.ID, &img.ItemID, &img.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ItemImage{}, models.ErrImageNotFound
		}
		return models.ItemImage{}, err
	}
	return img, nil
}
