package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"muattrans/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the transaction handle.
func (r *GORMCategoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &GORMCategoryRepository{db: tx}
}

// Create inserts a new category, generating an ID when none is set.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetByID retrieves a single non-deleted category. Returns (nil, nil) when
// the category does not exist.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// List retrieves all non-deleted categories ordered by name.
func (r *GORMCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ExistsByName reports whether a non-deleted category already uses the name.
func (r *GORMCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check category name uniqueness: %w", err)
	}
	return count > 0, nil
}

// AdjustProductCount shifts the denormalized product counter by delta using a
// relative UPDATE, so concurrent transactions do not clobber each other.
func (r *GORMCategoryRepository) AdjustProductCount(ctx context.Context, id string, delta int) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", id).
		UpdateColumn("product_count", gorm.Expr("product_count + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust product count for category %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s not found for counter update", id)
	}
	return nil
}

// SoftDelete marks the category deleted.
func (r *GORMCategoryRepository) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s not found for deletion", id)
	}
	return nil
}
