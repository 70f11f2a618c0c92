package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muattrans/internal/apperrors"
	"muattrans/internal/models"
	"muattrans/internal/repositories"
	"muattrans/internal/services"
)

func newCategoryService(t *testing.T) (*services.CategoryService, *services.ProductService) {
	t.Helper()
	db := setupDB(t)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	return services.NewCategoryService(db, categoryRepo),
		services.NewProductService(db, productRepo, categoryRepo, nil)
}

func TestCategoryService_CreateAndGet(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, models.CreateCategoryRequest{Name: "Spare Parts"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Zero(t, created.ProductCount)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Spare Parts", got.Name)

	// Names are unique among non-deleted categories.
	_, err = svc.Create(ctx, models.CreateCategoryRequest{Name: "Spare Parts"})
	assertAppError(t, err, apperrors.CodeDuplicate)
}

func TestCategoryService_List(t *testing.T) {
	svc, _ := newCategoryService(t)
	ctx := context.Background()

	for _, name := range []string{"Spare Parts", "Accessories"} {
		_, err := svc.Create(ctx, models.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	categories, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Accessories", categories[0].Name, "ordered by name")
}

func TestCategoryService_DeleteRestrictsWhileReferenced(t *testing.T) {
	svc, products := newCategoryService(t)
	ctx := context.Background()

	category, err := svc.Create(ctx, models.CreateCategoryRequest{Name: "Spare Parts"})
	require.NoError(t, err)

	created, err := products.Create(ctx, widgetRequest(category.ID), actor)
	require.NoError(t, err)

	// A category with products cannot be removed.
	err = svc.Delete(ctx, category.ID)
	assertAppError(t, err, apperrors.CodeInvalidState)

	// Once the product is gone the category can go too.
	_, err = products.Update(ctx, created.ID, models.UpdateProductRequest{
		Status: ptr(string(models.ProductStatusInactive)),
	}, actor)
	require.NoError(t, err)
	require.NoError(t, products.Delete(ctx, created.ID, actor))

	require.NoError(t, svc.Delete(ctx, category.ID))
	got, err := svc.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCategoryService_DeleteNotFound(t *testing.T) {
	svc, _ := newCategoryService(t)
	err := svc.Delete(context.Background(), uuid.New().String())
	assertAppError(t, err, apperrors.CodeNotFound)
}
