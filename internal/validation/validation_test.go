package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muattrans/internal/models"
	"muattrans/internal/validation"
)

const validCategoryID = "22222222-2222-2222-2222-222222222222"

func validCreate() models.CreateProductRequest {
	return models.CreateProductRequest{
		Name:       "Widget",
		SKU:        "WID-001",
		Price:      10,
		CategoryID: validCategoryID,
	}
}

func fields(errs []validation.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestCreateProduct_AcceptsValidPayload(t *testing.T) {
	v := validation.New()
	req := validCreate()
	assert.Empty(t, v.CreateProduct(&req))
}

func TestCreateProduct_FieldRules(t *testing.T) {
	v := validation.New()

	cases := []struct {
		name   string
		mutate func(*models.CreateProductRequest)
		field  string
		rule   string
	}{
		{"missing name", func(r *models.CreateProductRequest) { r.Name = "" }, "name", "required"},
		{"short name", func(r *models.CreateProductRequest) { r.Name = "ab" }, "name", "min"},
		{"long name", func(r *models.CreateProductRequest) { r.Name = strings.Repeat("a", 101) }, "name", "max"},
		{"missing sku", func(r *models.CreateProductRequest) { r.SKU = "" }, "sku", "required"},
		{"lowercase sku", func(r *models.CreateProductRequest) { r.SKU = "wid-001" }, "sku", "sku"},
		{"sku with spaces", func(r *models.CreateProductRequest) { r.SKU = "WID 001" }, "sku", "sku"},
		{"negative price", func(r *models.CreateProductRequest) { r.Price = -1 }, "price", "gte"},
		{"negative stock", func(r *models.CreateProductRequest) { r.Stock = -1 }, "stock", "gte"},
		{"bad status", func(r *models.CreateProductRequest) { r.Status = "archived" }, "status", "oneof"},
		{"bad category id", func(r *models.CreateProductRequest) { r.CategoryID = "not-a-uuid" }, "categoryId", "uuid"},
		{"too many tags", func(r *models.CreateProductRequest) { r.Tags = make([]string, 11) }, "tags", "max"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreate()
			tc.mutate(&req)
			errs := v.CreateProduct(&req)
			require.NotEmpty(t, errs)
			assert.Contains(t, fields(errs), tc.field)
			found := false
			for _, e := range errs {
				if e.Field == tc.field && e.Rule == tc.rule {
					found = true
					assert.NotEmpty(t, e.Message)
				}
			}
			assert.True(t, found, "expected a %q violation on %q, got %v", tc.rule, tc.field, errs)
		})
	}
}

func TestCreateProduct_SanitizesStringsInPlace(t *testing.T) {
	v := validation.New()
	req := validCreate()
	req.Name = "  <script>alert(1)</script>Widget  "
	req.Description = "<b>bold</b> move"
	req.SKU = " WID-001 "
	req.Tags = []string{" heavy <i>duty</i> "}

	errs := v.CreateProduct(&req)
	assert.Empty(t, errs)
	assert.Equal(t, "Widget", req.Name)
	assert.Equal(t, "bold move", req.Description)
	assert.Equal(t, "WID-001", req.SKU)
	assert.Equal(t, []string{"heavy duty"}, req.Tags)
}

func TestUpdateProduct_OmittedFieldsAreNotViolations(t *testing.T) {
	v := validation.New()
	req := models.UpdateProductRequest{}
	assert.Empty(t, v.UpdateProduct(&req))

	bad := "x"
	req.Name = &bad
	errs := v.UpdateProduct(&req)
	require.NotEmpty(t, errs)
	assert.Equal(t, "name", errs[0].Field)
}

func TestBulkUpdateProducts_RequiresAPatchField(t *testing.T) {
	v := validation.New()

	req := models.BulkUpdateProductsRequest{IDs: []string{validCategoryID}}
	errs := v.BulkUpdateProducts(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "required_without", errs[0].Rule)

	status := "inactive"
	req.Status = &status
	assert.Empty(t, v.BulkUpdateProducts(&req))

	// Ids must be present and well-formed.
	req.IDs = nil
	errs = v.BulkUpdateProducts(&req)
	require.NotEmpty(t, errs)
	assert.Equal(t, "ids", errs[0].Field)
}

func TestListProducts_QueryRules(t *testing.T) {
	v := validation.New()

	q := models.ListProductsQuery{Page: 1, Limit: 10, SortBy: "price", SortOrder: "desc"}
	assert.Empty(t, v.ListProducts(&q))

	q = models.ListProductsQuery{SortBy: "deleted_by"}
	errs := v.ListProducts(&q)
	require.NotEmpty(t, errs)
	assert.Equal(t, "sortBy", errs[0].Field)

	q = models.ListProductsQuery{Limit: 1000}
	errs = v.ListProducts(&q)
	require.NotEmpty(t, errs)
	assert.Equal(t, "limit", errs[0].Field)
}
