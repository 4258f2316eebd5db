package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"acheiBack/internal/match"
	"acheiBack/internal/models"
)

type ItemRepository struct {
	DB    *sql.DB
	Cache *CandidateCache
}

const itemColumns = `
		i.id, i.user_id, i.name, i.description,
		i.category_id, i.location_id, i.color_id, i.brand_id,
		i.status, i.found_lost_date, i.created_at, i.version,
		COALESCE(c.code, ''), COALESCE(l.code, ''), COALESCE(co.code, ''), COALESCE(b.code, ''),
		COALESCE(c.name, ''), COALESCE(l.name, '')`

const itemJoins = `
	FROM items i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN locations l ON l.id = i.location_id
	LEFT JOIN colors co ON co.id = i.color_id
	LEFT JOIN brands b ON b.id = i.brand_id`

func scanItem(row interface{ Scan(...any) error }) (models.Item, error) {
	var item models.Item
	err := row.Scan(
		&item.ID, &item.UserID, &item.Name, &item.Description,
		&item.CategoryID, &item.LocationID, &item.ColorID, &item.BrandID,
		&item.Status, &item.FoundLostDate, &item.CreatedAt, &item.Version,
		&item.CategoryCode, &item.LocationCode, &item.ColorCode, &item.BrandCode,
		&item.CategoryName, &item.LocationName,
	)
	return item, err
}

func (r *ItemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	query := `
		INSERT INTO items (user_id, name, description, category_id, location_id, color_id, brand_id, status, found_lost_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version`
	err := r.DB.QueryRowContext(ctx, query,
		item.UserID, item.Name, item.Description,
		item.CategoryID, item.LocationID, item.ColorID, item.BrandID,
		item.Status, item.FoundLostDate,
	).Scan(&item.ID, &item.CreatedAt, &item.Version)
	if err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id int) (models.Item, error) {
	query := `SELECT` + itemColumns + itemJoins + ` WHERE i.id = $1`
	item, err := scanItem(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, models.ErrItemNotFound
		}
		return models.Item{}, err
	}

	images, err := r.imagesForItem(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	item.Images = images
	return item, nil
}

// UpdateItem rewrites the descriptive fields and bumps the logical version counter.
func (r *ItemRepository) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	query := `
		UPDATE items
		SET name = $1, description = $2, category_id = $3, location_id = $4,
		    color_id = $5, brand_id = $6, status = $7, found_lost_date = $8,
		    version = version + 1
		WHERE id = $9
		RETURNING version`
	err := r.DB.QueryRowContext(ctx, query,
		item.Name, item.Description, item.CategoryID, item.LocationID,
		item.ColorID, item.BrandID, item.Status, item.FoundLostDate, item.ID,
	).Scan(&item.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, models.ErrItemNotFound
		}
		return models.Item{}, fmt.Errorf("update item: %w", err)
	}
	return r.GetItemByID(ctx, item.ID)
}

// DeleteItem removes the item; images, matches and pending jobs go with it through
// ON DELETE CASCADE.
func (r *ItemRepository) DeleteItem(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) ListItems(ctx context.Context, f models.ItemFilter) (models.ItemPage, error) {
	where := []string{"1=1"}
	var args []any

	add := func(cond string, val any) {
		args = append(args, val)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("i.status = $%d", f.Status)
	}
	if f.CategoryID != nil {
		add("i.category_id = $%d", *f.CategoryID)
	}
	if f.LocationID != nil {
		add("i.location_id = $%d", *f.LocationID)
	}
	if f.ColorID != nil {
		add("i.color_id = $%d", *f.ColorID)
	}
	if f.BrandID != nil {
		add("i.brand_id = $%d", *f.BrandID)
	}
	if f.UserID != nil {
		add("i.user_id = $%d", *f.UserID)
	}
	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(i.name ILIKE $%d OR i.description ILIKE $%d)", n, n))
	}

	page := models.ItemPage{}
	cond := strings.Join(where, " AND ")

	countQuery := `SELECT COUNT(*) FROM items i WHERE ` + cond
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&page.Count); err != nil {
		return models.ItemPage{}, err
	}

	if f.PageSize <= 0 {
		f.PageSize = 27
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	args = append(args, f.PageSize, (f.Page-1)*f.PageSize)
	query := `SELECT` + itemColumns + itemJoins + ` WHERE ` + cond +
		fmt.Sprintf(" ORDER BY i.created_at DESC, i.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return models.ItemPage{}, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return models.ItemPage{}, err
		}
		page.Items = append(page.Items, item)
	}
	if err = rows.Err(); err != nil {
		return models.ItemPage{}, err
	}

	totalsQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'found'),
			COUNT(*) FILTER (WHERE status = 'lost')
		FROM items`
	if err := r.DB.QueryRowContext(ctx, totalsQuery).Scan(&page.TotalFound, &page.TotalLost); err != nil {
		return models.ItemPage{}, err
	}

	if err := r.attachImages(ctx, page.Items); err != nil {
		return models.ItemPage{}, err
	}
	return page, nil
}

// Get implements match.ItemSource.
func (r *ItemRepository) Get(ctx context.Context, id int) (models.Item, error) {
	return r.GetItemByID(ctx, id)
}

// ListCandidates implements match.ItemSource. Candidate id sets are cached in Redis
// with a short TTL; a cache fault falls back to the direct query.
func (r *ItemRepository) ListCandidates(ctx context.Context, f match.CandidateFilter) ([]models.Item, error) {
	if r.Cache != nil {
		if ids, ok := r.Cache.Get(ctx, f); ok {
			return r.itemsByIDs(ctx, ids)
		}
	}

	where := []string{"i.status = $1"}
	args := []any{f.Status}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("i.category_id = $%d", len(args)))
	}
	if f.LocationID != nil {
		args = append(args, *f.LocationID)
		where = append(where, fmt.Sprintf("i.location_id = $%d", len(args)))
	}
	args = append(args, f.Limit)
	query := `SELECT` + itemColumns + itemJoins +
		` WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if r.Cache != nil {
		ids := make([]int, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}
		r.Cache.Set(ctx, f, ids)
	}
	return items, nil
}

func (r *ItemRepository) itemsByIDs(ctx context.Context, ids []int) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := `SELECT` + itemColumns + itemJoins +
		` WHERE i.id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY i.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ItemRepository) imagesForItem(ctx context.Context, itemID int) ([]models.ItemImage, error) {
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

func (r *ItemRepository) attachImages(ctx context.Context, items []models.Item) error {
	for i := range items {
		images, err := r.imagesForItem(ctx, items[i].ID)
		if err != nil {
			return err
		}
		items[i].Images = images
	}
	return nil
}
