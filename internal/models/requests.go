package models

// Request payloads for the catalog endpoints. Field rules live on the
// validate tags; the validation package additionally sanitizes string fields
// in place before a request reaches a service.

// CreateProductRequest is the payload for POST /products.
type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"omitempty,max=1000"`
	SKU         string   `json:"sku" validate:"required,min=3,max=50,sku"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
	IsVisible   *bool    `json:"isVisible"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	CategoryID  string   `json:"categoryId" validate:"required,uuid"`
}

// UpdateProductRequest is the payload for PUT /products/:id. Nil pointers
// mean "leave unchanged".
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	SKU         *string  `json:"sku" validate:"omitempty,min=3,max=50,sku"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Weight      *float64 `json:"weight" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	IsVisible   *bool    `json:"isVisible"`
	Tags        []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=30"`
	CategoryID  *string  `json:"categoryId" validate:"omitempty,uuid"`
}

// BulkUpdateProductsRequest is the payload for PATCH /products/bulk. The
// patch fields are an explicit allow-list; unknown JSON keys are rejected at
// the handler before validation runs.
type BulkUpdateProductsRequest struct {
	IDs       []string `json:"ids" validate:"required,min=1,max=100,dive,uuid"`
	Status    *string  `json:"status" validate:"omitempty,oneof=active inactive"`
	IsVisible *bool    `json:"isVisible"`
}

// ListProductsQuery carries the parsed query string of GET /products. An
// empty or omitted value means "no constraint".
type ListProductsQuery struct {
	Page       int      `json:"page" validate:"omitempty,gte=1"`
	Limit      int      `json:"limit" validate:"omitempty,gte=1,lte=100"`
	Search     string   `json:"search" validate:"omitempty,max=100"`
	CategoryID string   `json:"categoryId" validate:"omitempty,uuid"`
	Status     string   `json:"status" validate:"omitempty,oneof=active inactive"`
	SortBy     string   `json:"sortBy" validate:"omitempty,oneof=name sku price stock status created_at updated_at"`
	SortOrder  string   `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
	MinPrice   *float64 `json:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
}

// StatsQuery carries the parsed query string of GET /products/stats.
type StatsQuery struct {
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

// CreateCategoryRequest is the payload for POST /categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=1000"`
}

// PageInfo describes one page of a list result.
type PageInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// ProductPage is the result of a list operation.
type ProductPage struct {
	Items    []Product `json:"items"`
	PageInfo PageInfo  `json:"pageInfo"`
}

// CategoryStat is one row of the per-category stats breakdown.
type CategoryStat struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

// ProductStats is the aggregate returned by GET /products/stats. All numeric
// aggregates are zero, never null, on an empty filtered set.
type ProductStats struct {
	Total        int64          `json:"total"`
	Active       int64          `json:"active"`
	Inactive     int64          `json:"inactive"`
	AveragePrice float64        `json:"averagePrice"`
	Breakdown    []CategoryStat `json:"breakdown"`
}

// BulkUpdateResult reports a bulk update.
type BulkUpdateResult struct {
	UpdatedCount int64    `json:"updatedCount"`
	IDs          []string `json:"ids"`
}
