package repositories

import (
	"context"

	"gorm.io/gorm"

	"muattrans/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) CategoryRepository

	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// AdjustProductCount shifts the denormalized counter by delta. Only
	// product write transactions may call this.
	AdjustProductCount(ctx context.Context, id string, delta int) error
	SoftDelete(ctx context.Context, id string) error
}
