package repositories

import (
	"context"

	"gorm.io/gorm"

	"muattrans/internal/models"
)

// ProductRepository defines the interface for product data access. Lookups
// return (nil, nil) when the row is absent; callers decide whether absence is
// an error.
type ProductRepository interface {
	// WithTx returns a repository bound to the given transaction handle.
	WithTx(tx *gorm.DB) ProductRepository

	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, q models.ListProductsQuery) ([]models.Product, int64, error)
	Update(ctx context.Context, product *models.Product) error
	SoftDelete(ctx context.Context, id, actorID string) error

	// ExistsByNameAndCategory reports whether a non-deleted product other than
	// excludeID already uses the (name, categoryID) pair.
	ExistsByNameAndCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error)
	// ExistsBySKU reports whether a non-deleted product other than excludeID
	// already uses the SKU.
	ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error)

	CountByIDs(ctx context.Context, ids []string) (int64, error)
	BulkUpdate(ctx context.Context, ids []string, fields map[string]any) (int64, error)

	Count(ctx context.Context, q models.StatsQuery) (int64, error)
	CountByStatus(ctx context.Context, q models.StatsQuery, status models.ProductStatus) (int64, error)
	AveragePrice(ctx context.Context, q models.StatsQuery) (float64, error)
	CategoryBreakdown(ctx context.Context, q models.StatsQuery) ([]models.CategoryStat, error)
}
