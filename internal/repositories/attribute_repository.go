package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"acheiBack/internal/models"
)

// The four item attributes (category, location, color, brand) share one table shape:
// id, unique name, short code. attributeTable centralizes the SQL; the typed
// repositories below keep the handler/service layering uniform.

type attributeTable struct {
	DB       *sql.DB
	table    string
	notFound error
}

type attributeRow struct {
	ID        int
	Name      string
	Code      string
	CreatedAt sql.NullTime
}

func (t attributeTable) create(ctx context.Context, name, code string) (attributeRow, error) {
	var row attributeRow
	query := fmt.Sprintf(`INSERT INTO %s (name, code) VALUES ($1, $2) RETURNING id, name, code, created_at`, t.table)
	err := t.DB.QueryRowContext(ctx, query, name, code).Scan(&row.ID, &row.Name, &row.Code, &row.CreatedAt)
	if err != nil {
		return attributeRow{}, fmt.Errorf("create %s: %w", t.table, err)
	}
	return row, nil
}

func (t attributeTable) getByID(ctx context.Context, id int) (attributeRow, error) {
	var row attributeRow
	query := fmt.Sprintf(`SELECT id, name, code, created_at FROM %s WHERE id = $1`, t.table)
	err := t.DB.QueryRowContext(ctx, query, id).Scan(&row.ID, &row.Name, &row.Code, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attributeRow{}, t.notFound
		}
		return attributeRow{}, err
	}
	return row, nil
}

func (t attributeTable) update(ctx context.Context, id int, name, code string) (attributeRow, error) {
	var row attributeRow
	query := fmt.Sprintf(`UPDATE %s SET name = $1, code = $2 WHERE id = $3 RETURNING id, name, code, created_at`, t.table)
	err := t.DB.QueryRowContext(ctx, query, name, code, id).Scan(&row.ID, &row.Name, &row.Code, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attributeRow{}, t.notFound
		}
		return attributeRow{}, err
	}
	return row, nil
}

// delete removes the attribute; items referencing it keep living with the reference
// soft-nullified (ON DELETE SET NULL on the items table).
func (t attributeTable) delete(ctx context.Context, id int) error {
	res, err := t.DB.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, t.table), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return t.notFound
	}
	return nil
}

func (t attributeTable) list(ctx context.Context) ([]attributeRow, error) {
	query := fmt.Sprintf(`SELECT id, name, code, created_at FROM %s ORDER BY name`, t.table)
	rows, err := t.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []attributeRow
	for rows.Next() {
		var row attributeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Code, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

type CategoryRepository struct {
	table attributeTable
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{table: attributeTable{DB: db, table: "categories", notFound: models.ErrCategoryNotFound}}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	row, err := r.table.create(ctx, c.Name, c.Code)
	return categoryFromRow(row), err
}

func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	row, err := r.table.getByID(ctx, id)
	return categoryFromRow(row), err
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	row, err := r.table.update(ctx, c.ID, c.Name, c.Code)
	return categoryFromRow(row), err
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int) error {
	return r.table.delete(ctx, id)
}

func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.table.list(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, len(rows))
	for i, row := range rows {
		categories[i] = categoryFromRow(row)
	}
	return categories, nil
}

func categoryFromRow(row attributeRow) models.Category {
	return models.Category{ID: row.ID, Name: row.Name, Code: row.Code, CreatedAt: row.CreatedAt.Time}
}

type LocationRepository struct {
	table attributeTable
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{table: attributeTable{DB: db, table: "locations", notFound: models.ErrLocationNotFound}}
}

func (r *LocationRepository) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	row, err := r.table.create(ctx, l.Name, l.Code)
	return locationFromRow(row), err
}

func (r *LocationRepository) GetLocationByID(ctx context.Context, id int) (models.Location, error) {
	row, err := r.table.getByID(ctx, id)
	return locationFromRow(row), err
}

func (r *LocationRepository) UpdateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	row, err := r.table.update(ctx, l.ID, l.Name, l.Code)
	return locationFromRow(row), err
}

func (r *LocationRepository) DeleteLocation(ctx context.Context, id int) error {
	return r.table.delete(ctx, id)
}

func (r *LocationRepository) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := r.table.list(ctx)
	if err != nil {
		return nil, err
	}
	locations := make([]models.Location, len(rows))
	for i, row := range rows {
		locations[i] = locationFromRow(row)
	}
	return locations, nil
}

func locationFromRow(row attributeRow) models.Location {
	return models.Location{ID: row.ID, Name: row.Name, Code: row.Code, CreatedAt: row.CreatedAt.Time}
}

type ColorRepository struct {
	table attributeTable
}

func NewColorRepository(db *sql.DB) *ColorRepository {
	return &ColorRepository{table: attributeTable{DB: db, table: "colors", notFound: models.ErrColorNotFound}}
}

func (r *ColorRepository) CreateColor(ctx context.Context, c models.Color) (models.Color, error) {
	row, err := r.table.create(ctx, c.Name, c.Code)
	return colorFromRow(row), err
}

func (r *ColorRepository) GetColorByID(ctx context.Context, id int) (models.Color, error) {
	row, err := r.table.getByID(ctx, id)
	return colorFromRow(row), err
}

func (r *ColorRepository) UpdateColor(ctx context.Context, c models.Color) (models.Color, error) {
	row, err := r.table.update(ctx, c.ID, c.Name, c.Code)
	return colorFromRow(row), err
}

func (r *ColorRepository) DeleteColor(ctx context.Context, id int) error {
	return r.table.delete(ctx, id)
}

func (r *ColorRepository) GetAllColors(ctx context.Context) ([]models.Color, error) {
	rows, err := r.table.list(ctx)
	if err != nil {
		return nil, err
	}
	colors := make([]models.Color, len(rows))
	for i, row := range rows {
		colors[i] = colorFromRow(row)
	}
	return colors, nil
}

func colorFromRow(row attributeRow) models.Color {
	return models.Color{ID: row.ID, Name: row.Name, Code: row.Code, CreatedAt: row.CreatedAt.Time}
}

type BrandRepository struct {
	table attributeTable
}

func NewBrandRepository(db *sql.DB) *BrandRepository {
	return &BrandRepository{table: attributeTable{DB: db, table: "brands", notFound: models.ErrBrandNotFound}}
}

func (r *BrandRepository) CreateBrand(ctx context.Context, b models.Brand) (models.Brand, error) {
	row, err := r.table.create(ctx, b.Name, b.Code)
	return brandFromRow(row), err
}

func (r *BrandRepository) GetBrandByID(ctx context.Context, id int) (models.Brand, error) {
	row, err := r.table.getByID(ctx, id)
	return brandFromRow(row), err
}

func (r *BrandRepository) UpdateBrand(ctx context.Context, b models.Brand) (models.Brand, error) {
	row, err := r.table.update(ctx, b.ID, b.Name, b.Code)
	return brandFromRow(row), err
}

func (r *BrandRepository) DeleteBrand(ctx context.Context, id int) error {
	return r.table.delete(ctx, id)
}

func (r *BrandRepository) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	rows, err := r.table.list(ctx)
	if err != nil {
		return nil, err
	}
	brands := make([]models.Brand, len(rows))
	for i, row := range rows {
		brands[i] = brandFromRow(row)
	}
	return brands, nil
}

func brandFromRow(row attributeRow) models.Brand {
	return models.Brand{ID: row.ID, Name: row.Name, Code: row.Code, CreatedAt: row.CreatedAt.Time}
}
