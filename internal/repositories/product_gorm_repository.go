package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"muattrans/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// WithTx returns a copy of the repository bound to the transaction handle, so
// services can span several repositories with one transaction.
func (r *GORMProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &GORMProductRepository{db: tx}
}

// Create inserts a new product, generating an ID when none is set.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a single non-deleted product with its category and
// creator attached. Returns (nil, nil) when the product does not exist.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Creator").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// filtered applies the conjunctive list/stats filters. Empty values mean "no
// constraint", never "match empty string".
func (r *GORMProductRepository) filtered(ctx context.Context, q models.ListProductsQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Product{})
	if q.Search != "" {
		like := "%" + strings.ToLower(q.Search) + "%"
		db = db.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(sku) LIKE ?",
			like, like, like,
		)
	}
	if q.CategoryID != "" {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	if q.Status != "" {
		db = db.Where("status = ?", q.Status)
	}
	if q.MinPrice != nil {
		db = db.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		db = db.Where("price <= ?", *q.MaxPrice)
	}
	return db
}

// List returns one page of products matching the filter plus the total count.
func (r *GORMProductRepository) List(ctx context.Context, q models.ListProductsQuery) ([]models.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	order := "asc"
	if strings.EqualFold(q.SortOrder, "desc") {
		order = "desc"
	}

	offset := (q.Page - 1) * q.Limit
	var products []models.Product
	err := r.filtered(ctx, q).
		Preload("Category").
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Limit(q.Limit).
		Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// Update persists all fields of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update", product.ID)
	}
	return nil
}

// SoftDelete marks the product deleted and stamps the deleting actor in one
// UPDATE. The row stays in storage but drops out of all default queries.
func (r *GORMProductRepository) SoftDelete(ctx context.Context, id, actorID string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_by": actorID,
			"deleted_at": time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion", id)
	}
	return nil
}

// ExistsByNameAndCategory checks the per-category name uniqueness among
// non-deleted products, excluding excludeID when updating.
func (r *GORMProductRepository) ExistsByNameAndCategory(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("name = ? AND category_id = ?", name, categoryID)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product name uniqueness: %w", err)
	}
	return count > 0, nil
}

// ExistsBySKU checks the global SKU uniqueness among non-deleted products.
func (r *GORMProductRepository) ExistsBySKU(ctx context.Context, sku, excludeID string) (bool, error) {
	db := r.db.WithContext(ctx).Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product SKU uniqueness: %w", err)
	}
	return count > 0, nil
}

// CountByIDs counts how many of the given ids exist as non-deleted products.
func (r *GORMProductRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id IN ?", ids).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products by ids: %w", err)
	}
	return count, nil
}

// BulkUpdate applies the same field patch to all products in the id set with
// a single UPDATE and returns the number of affected rows.
func (r *GORMProductRepository) BulkUpdate(ctx context.Context, ids []string, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id IN ?", ids).
		Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to bulk update products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *GORMProductRepository) statsFiltered(ctx context.Context, q models.StatsQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Product{})
	if q.CategoryID != "" {
		db = db.Where("category_id = ?", q.CategoryID)
	}
	return db
}

// Count returns the number of non-deleted products matching the stats filter.
func (r *GORMProductRepository) Count(ctx context.Context, q models.StatsQuery) (int64, error) {
	var count int64
	if err := r.statsFiltered(ctx, q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of matching products in the given status.
func (r *GORMProductRepository) CountByStatus(ctx context.Context, q models.StatsQuery, status models.ProductStatus) (int64, error) {
	var count int64
	err := r.statsFiltered(ctx, q).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products by status: %w", err)
	}
	return count, nil
}

// AveragePrice returns the mean price of matching products, zero when the
// filtered set is empty.
func (r *GORMProductRepository) AveragePrice(ctx context.Context, q models.StatsQuery) (float64, error) {
	var avg float64
	err := r.statsFiltered(ctx, q).
		Select("COALESCE(AVG(price), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute average price: %w", err)
	}
	return avg, nil
}

// CategoryBreakdown returns per-category product counts, largest first.
func (r *GORMProductRepository) CategoryBreakdown(ctx context.Context, q models.StatsQuery) ([]models.CategoryStat, error) {
	var stats []models.CategoryStat
	err := r.statsFiltered(ctx, q).
		Select("products.category_id AS category_id, categories.name AS category_name, COUNT(*) AS count").
		Joins("JOIN categories ON categories.id = products.category_id").
		Group("products.category_id, categories.name").
		Order("count DESC").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}
	return stats, nil
}
