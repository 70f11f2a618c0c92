package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"muattrans/internal/models"
	"muattrans/internal/services"
	"muattrans/internal/validation"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app. The /stats
// and /bulk routes must be registered before /:id so the literal segments are
// not captured as ids.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Post("/", h.HandleCreate)
	products.Get("/", h.HandleList)
	products.Get("/stats", h.HandleStats)
	products.Patch("/bulk", h.HandleBulkUpdate)
	products.Get("/:id", h.HandleGetByID)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
}

// actorID returns the authenticated actor placed in locals by the JWT
// middleware, threaded explicitly into every mutating service call.
func actorID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	const opType = "CREATE_PRODUCT"

	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body", opType)
	}
	if errs := h.validate.CreateProduct(&req); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	product, err := h.service.Create(c.Context(), req, actorID(c))
	if err != nil {
		log.Printf("error creating product: %v", err)
		return respondError(c, err, opType)
	}
	return respondCreated(c, product, opType)
}

// HandleList returns one page of products matching the query filters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	const opType = "LIST_PRODUCTS"

	q := models.ListProductsQuery{
		Page:       c.QueryInt("page", 0),
		Limit:      c.QueryInt("limit", 0),
		Search:     c.Query("search"),
		CategoryID: c.Query("categoryId"),
		Status:     c.Query("status"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondBadRequest(c, "minPrice must be a number", opType)
		}
		q.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return respondBadRequest(c, "maxPrice must be a number", opType)
		}
		q.MaxPrice = &v
	}
	if errs := h.validate.ListProducts(&q); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	page, err := h.service.List(c.Context(), q)
	if err != nil {
		log.Printf("error listing products: %v", err)
		return respondError(c, err, opType)
	}
	return respondOK(c, page, opType)
}

// HandleStats returns the aggregate product summary.
func (h *ProductHandler) HandleStats(c *fiber.Ctx) error {
	const opType = "PRODUCT_STATS"

	q := models.StatsQuery{CategoryID: c.Query("categoryId")}
	if errs := h.validate.Stats(&q); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	stats, err := h.service.Stats(c.Context(), q)
	if err != nil {
		log.Printf("error computing product stats: %v", err)
		return respondError(c, err, opType)
	}
	return respondOK(c, stats, opType)
}

// HandleGetByID returns a single product. Absence maps to 404 here; the
// service itself treats it as an empty result.
func (h *ProductHandler) HandleGetByID(c *fiber.Ctx) error {
	const opType = "GET_PRODUCT"

	id := c.Params("id")
	product, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("error getting product %s: %v", id, err)
		return respondError(c, err, opType)
	}
	if product == nil {
		return respondNotFound(c, "product not found", opType)
	}
	return respondOK(c, product, opType)
}

// HandleUpdate applies a patch to a product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	const opType = "UPDATE_PRODUCT"

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body", opType)
	}
	if errs := h.validate.UpdateProduct(&req); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	product, err := h.service.Update(c.Context(), c.Params("id"), req, actorID(c))
	if err != nil {
		log.Printf("error updating product %s: %v", c.Params("id"), err)
		return respondError(c, err, opType)
	}
	return respondOK(c, product, opType)
}

// HandleBulkUpdate applies the same allow-listed patch to a set of products.
// Unknown JSON keys are rejected before validation runs.
func (h *ProductHandler) HandleBulkUpdate(c *fiber.Ctx) error {
	const opType = "BULK_UPDATE_PRODUCTS"

	var req models.BulkUpdateProductsRequest
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return respondBadRequest(c, "invalid request body: "+err.Error(), opType)
	}
	if errs := h.validate.BulkUpdateProducts(&req); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	result, err := h.service.BulkUpdate(c.Context(), req, actorID(c))
	if err != nil {
		log.Printf("error bulk updating products: %v", err)
		return respondError(c, err, opType)
	}
	return respondOK(c, result, opType)
}

// HandleDelete soft-deletes a product.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	const opType = "DELETE_PRODUCT"

	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id, actorID(c)); err != nil {
		log.Printf("error deleting product %s: %v", id, err)
		return respondError(c, err, opType)
	}
	return respondOK(c, fiber.Map{"id": id}, opType)
}
