package services

import (
	"context"

	"gorm.io/gorm"

	"muattrans/internal/apperrors"
	"muattrans/internal/models"
	"muattrans/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	db         *gorm.DB
	categories repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(db *gorm.DB, categories repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		db:         db,
		categories: categories,
	}
}

// Create inserts a new category with a unique name.
func (s *CategoryService) Create(ctx context.Context, req models.CreateCategoryRequest) (*models.Category, error) {
	var created *models.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categories.WithTx(tx)

		dup, err := categories.ExistsByName(ctx, req.Name)
		if err != nil {
			return err
		}
		if dup {
			return apperrors.Duplicate("category '%s' already exists", req.Name)
		}

		category := &models.Category{
			Name:        req.Name,
			Description: req.Description,
		}
		if err := categories.Create(ctx, category); err != nil {
			return err
		}
		created = category
		return nil
	})
	if err != nil {
		return nil, failure(err)
	}
	return created, nil
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, failure(err)
	}
	return categories, nil
}

// GetByID returns a category, or (nil, nil) when absent.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, failure(err)
	}
	return category, nil
}

// Delete removes a category. A category still referenced by products cannot
// be removed (restrict-on-delete).
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categories.WithTx(tx)

		category, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperrors.NotFound("category with ID %s not found", id)
		}
		if category.ProductCount > 0 {
			return apperrors.InvalidState("category %s still has %d products", id, category.ProductCount)
		}

		return categories.SoftDelete(ctx, id)
	})
	if err != nil {
		return failure(err)
	}
	return nil
}
