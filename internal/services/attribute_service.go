package services

import (
	"context"

	"acheiBack/internal/models"
	"acheiBack/internal/repositories"
)

type CategoryService struct {
	CategoryRepo *repositories.CategoryRepository
}

func (s *CategoryService) CreateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	return s.CategoryRepo.CreateCategory(ctx, c)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (models.Category, error) {
	return s.CategoryRepo.GetCategoryByID(ctx, id)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, c models.Category) (models.Category, error) {
	return s.CategoryRepo.UpdateCategory(ctx, c)
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.CategoryRepo.DeleteCategory(ctx, id)
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.CategoryRepo.GetAllCategories(ctx)
}

type LocationService struct {
	LocationRepo *repositories.LocationRepository
}

func (s *LocationService) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	return s.LocationRepo.CreateLocation(ctx, l)
}

func (s *LocationService) GetLocationByID(ctx context.Context, id int) (models.Location, error) {
	return s.LocationRepo.GetLocationByID(ctx, id)
}

func (s *LocationService) UpdateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	return s.LocationRepo.UpdateLocation(ctx, l)
}

func (s *LocationService) DeleteLocation(ctx context.Context, id int) error {
	return s.LocationRepo.DeleteLocation(ctx, id)
}

func (s *LocationService) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	return s.LocationRepo.GetAllLocations(ctx)
}

type ColorService struct {
	ColorRepo *repositories.ColorRepository
}

func (s *ColorService) CreateColor(ctx context.Context, c models.Color) (models.Color, error) {
	return s.ColorRepo.CreateColor(ctx, c)
}

func (s *ColorService) GetColorByID(ctx context.Context, id int) (models.Color, error) {
	return s.ColorRepo.GetColorByID(ctx, id)
}

func (s *ColorService) UpdateColor(ctx context.Context, c models.Color) (models.Color, error) {
	return s.ColorRepo.UpdateColor(ctx, c)
}

func (s *ColorService) DeleteColor(ctx context.Context, id int) error {
	return s.ColorRepo.DeleteColor(ctx, id)
}

func (s *ColorService) GetAllColors(ctx context.Context) ([]models.Color, error) {
	return s.ColorRepo.GetAllColors(ctx)
}

type BrandService struct {
	BrandRepo *repositories.BrandRepository
}

func (s *BrandService) CreateBrand(ctx context.Context, b models.Brand) (models.Brand, error) {
	return s.BrandRepo.CreateBrand(ctx, b)
}

func (s *BrandService) GetBrandByID(ctx context.Context, id int) (models.Brand, error) {
	return s.BrandRepo.GetBrandByID(ctx, id)
}

func (s *BrandService) UpdateBrand(ctx context.Context, b models.Brand) (models.Brand, error) {
	return s.BrandRepo.UpdateBrand(ctx, b)
}

func (s *BrandService) DeleteBrand(ctx context.Context, id int) error {
	return s.BrandRepo.DeleteBrand(ctx, id)
}

func (s *BrandService) GetAllBrands(ctx context.Context) ([]models.Brand, error) {
	return s.BrandRepo.GetAllBrands(ctx)
}
