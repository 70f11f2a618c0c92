package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"muattrans/internal/apperrors"
	"muattrans/internal/models"
	"muattrans/internal/repositories"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ProductService is the only component that mutates product state. Every
// mutating operation runs as one database transaction: either all constituent
// writes commit (the row plus the category counter it affects), or none do.
type ProductService struct {
	db         *gorm.DB
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	events     EventPublisher
}

// NewProductService creates a new ProductService. events may be nil, in which
// case change events are skipped.
func NewProductService(db *gorm.DB, products repositories.ProductRepository, categories repositories.CategoryRepository, events EventPublisher) *ProductService {
	return &ProductService{
		db:         db,
		products:   products,
		categories: categories,
		events:     events,
	}
}

// failure translates an error leaving a service operation. Typed failures
// pass through, duplicate-key errors from the unique indexes become the same
// conflict as the application-level check, everything else is wrapped as an
// internal failure with the cause preserved for logs.
func failure(err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Duplicate("a product with the same name or SKU already exists")
	}
	log.Printf("unexpected service error: %v", err)
	return apperrors.Internal(err)
}

// Create inserts a new product and increments its category's product counter
// atomically. The actor is stamped as creator.
func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest, actorID string) (*models.Product, error) {
	var created *models.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		categories := s.categories.WithTx(tx)

		category, err := categories.GetByID(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperrors.ReferenceNotFound("category with ID %s does not exist", req.CategoryID)
		}

		dup, err := products.ExistsByNameAndCategory(ctx, req.Name, req.CategoryID, "")
		if err != nil {
			return err
		}
		if dup {
			return apperrors.Duplicate("product '%s' already exists in this category", req.Name)
		}

		dup, err = products.ExistsBySKU(ctx, req.SKU, "")
		if err != nil {
			return err
		}
		if dup {
			return apperrors.Duplicate("product with SKU '%s' already exists", req.SKU)
		}

		status := models.ProductStatus(req.Status)
		if status == "" {
			status = models.ProductStatusActive
		}
		visible := true
		if req.IsVisible != nil {
			visible = *req.IsVisible
		}

		product := &models.Product{
			Name:        req.Name,
			Description: req.Description,
			SKU:         req.SKU,
			Price:       decimal.NewFromFloat(req.Price),
			Stock:       req.Stock,
			Status:      status,
			IsVisible:   visible,
			Tags:        req.Tags,
			CategoryID:  req.CategoryID,
			CreatedBy:   &actorID,
		}
		if req.Weight != nil {
			w := decimal.NewFromFloat(*req.Weight)
			product.Weight = &w
		}

		if err := products.Create(ctx, product); err != nil {
			return err
		}
		if err := categories.AdjustProductCount(ctx, req.CategoryID, 1); err != nil {
			return err
		}

		created = product
		return nil
	})
	if err != nil {
		return nil, failure(err)
	}

	s.publish("catalog.product.created", created, actorID)
	return created, nil
}

// List returns one page of products matching the filter, read-only.
func (s *ProductService) List(ctx context.Context, q models.ListProductsQuery) (*models.ProductPage, error) {
	if q.Page < 1 {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}

	items, total, err := s.products.List(ctx, q)
	if err != nil {
		return nil, failure(err)
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &models.ProductPage{
		Items: items,
		PageInfo: models.PageInfo{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    q.Page < totalPages,
			HasPrev:    q.Page > 1 && total > 0,
		},
	}, nil
}

// GetByID returns the product with its category and creator attached, or
// (nil, nil) when absent — the caller decides whether absence is an error.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, failure(err)
	}
	return product, nil
}

// Update applies the patch to an existing product. A category change moves
// the denormalized counter from the old category to the new one inside the
// same transaction as the row update.
func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest, actorID string) (*models.Product, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		categories := s.categories.WithTx(tx)

		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperrors.NotFound("product with ID %s not found", id)
		}

		targetName := product.Name
		if req.Name != nil {
			targetName = *req.Name
		}
		targetCategory := product.CategoryID
		if req.CategoryID != nil {
			targetCategory = *req.CategoryID
		}

		if targetCategory != product.CategoryID {
			category, err := categories.GetByID(ctx, targetCategory)
			if err != nil {
				return err
			}
			if category == nil {
				return apperrors.ReferenceNotFound("category with ID %s does not exist", targetCategory)
			}
		}

		if targetName != product.Name || targetCategory != product.CategoryID {
			dup, err := products.ExistsByNameAndCategory(ctx, targetName, targetCategory, product.ID)
			if err != nil {
				return err
			}
			if dup {
				return apperrors.Duplicate("product '%s' already exists in this category", targetName)
			}
		}

		if req.SKU != nil && *req.SKU != product.SKU {
			dup, err := products.ExistsBySKU(ctx, *req.SKU, product.ID)
			if err != nil {
				return err
			}
			if dup {
				return apperrors.Duplicate("product with SKU '%s' already exists", *req.SKU)
			}
			product.SKU = *req.SKU
		}

		if targetCategory != product.CategoryID {
			if err := categories.AdjustProductCount(ctx, product.CategoryID, -1); err != nil {
				return err
			}
			if err := categories.AdjustProductCount(ctx, targetCategory, 1); err != nil {
				return err
			}
			product.CategoryID = targetCategory
		}

		product.Name = targetName
		if req.Description != nil {
			product.Description = *req.Description
		}
		if req.Price != nil {
			product.Price = decimal.NewFromFloat(*req.Price)
		}
		if req.Stock != nil {
			product.Stock = *req.Stock
		}
		if req.Weight != nil {
			w := decimal.NewFromFloat(*req.Weight)
			product.Weight = &w
		}
		if req.Status != nil {
			product.Status = models.ProductStatus(*req.Status)
		}
		if req.IsVisible != nil {
			product.IsVisible = *req.IsVisible
		}
		if req.Tags != nil {
			product.Tags = req.Tags
		}
		product.UpdatedBy = &actorID
		// Detach preloaded associations so Save touches only the row.
		product.Category = nil
		product.Creator = nil

		return products.Update(ctx, product)
	})
	if err != nil {
		return nil, failure(err)
	}

	updated, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, failure(err)
	}

	s.publish("catalog.product.updated", updated, actorID)
	return updated, nil
}

// Delete soft-deletes an inactive product and decrements its category's
// counter atomically. Deleting a product that is still active is an invalid
// state transition and leaves the store untouched.
func (s *ProductService) Delete(ctx context.Context, id, actorID string) error {
	var deleted *models.Product

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		categories := s.categories.WithTx(tx)

		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperrors.NotFound("product with ID %s not found", id)
		}
		if product.Status == models.ProductStatusActive {
			return apperrors.InvalidState("product %s is active and must be deactivated before deletion", id)
		}

		if err := categories.AdjustProductCount(ctx, product.CategoryID, -1); err != nil {
			return err
		}
		if err := products.SoftDelete(ctx, id, actorID); err != nil {
			return err
		}

		deleted = product
		return nil
	})
	if err != nil {
		return failure(err)
	}

	s.publish("catalog.product.deleted", deleted, actorID)
	return nil
}

// Stats computes the read-only aggregate summary. The four independent
// queries run concurrently and are assembled afterwards; an empty filtered
// set yields zeros, never nulls.
func (s *ProductService) Stats(ctx context.Context, q models.StatsQuery) (*models.ProductStats, error) {
	var (
		wg        sync.WaitGroup
		total     int64
		active    int64
		inactive  int64
		avgPrice  float64
		breakdown []models.CategoryStat
		errs      [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		total, errs[0] = s.products.Count(ctx, q)
	}()
	go func() {
		defer wg.Done()
		active, errs[1] = s.products.CountByStatus(ctx, q, models.ProductStatusActive)
	}()
	go func() {
		defer wg.Done()
		avgPrice, errs[2] = s.products.AveragePrice(ctx, q)
	}()
	go func() {
		defer wg.Done()
		breakdown, errs[3] = s.products.CategoryBreakdown(ctx, q)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, failure(err)
		}
	}

	inactive = total - active
	if breakdown == nil {
		breakdown = []models.CategoryStat{}
	}
	return &models.ProductStats{
		Total:        total,
		Active:       active,
		Inactive:     inactive,
		AveragePrice: avgPrice,
		Breakdown:    breakdown,
	}, nil
}

// BulkUpdate applies the allow-listed patch to every product in the id set
// with one UPDATE. The precondition is all-or-nothing: a single unknown id
// fails the whole call and mutates zero rows.
func (s *ProductService) BulkUpdate(ctx context.Context, req models.BulkUpdateProductsRequest, actorID string) (*models.BulkUpdateResult, error) {
	ids := dedupe(req.IDs)

	var result *models.BulkUpdateResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)

		count, err := products.CountByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return apperrors.PartialReference("%d of %d product ids do not exist", int64(len(ids))-count, len(ids))
		}

		fields := map[string]any{"updated_by": actorID}
		if req.Status != nil {
			fields["status"] = *req.Status
		}
		if req.IsVisible != nil {
			fields["is_visible"] = *req.IsVisible
		}

		updated, err := products.BulkUpdate(ctx, ids, fields)
		if err != nil {
			return err
		}

		result = &models.BulkUpdateResult{UpdatedCount: updated, IDs: ids}
		return nil
	})
	if err != nil {
		return nil, failure(err)
	}

	s.publish("catalog.product.bulk_updated", nil, actorID)
	return result, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// publish emits a catalog change event after commit. Failures are logged and
// never surfaced to the caller.
func (s *ProductService) publish(routingKey string, product *models.Product, actorID string) {
	if s.events == nil {
		return
	}

	event := map[string]any{"actorId": actorID}
	if product != nil {
		event["productId"] = product.ID
		event["name"] = product.Name
		event["sku"] = product.SKU
		event["status"] = product.Status
		event["categoryId"] = product.CategoryID
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish("catalog", routingKey, body); err != nil {
		log.Printf("warning: failed to publish %s event: %v", routingKey, err)
	}
}
