package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"muattrans/internal/models"
	"muattrans/internal/services"
	"muattrans/internal/validation"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validation.Validator
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, validate *validation.Validator) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Post("/", h.HandleCreate)
	categories.Get("/", h.HandleList)
	categories.Get("/:id", h.HandleGetByID)
	categories.Delete("/:id", h.HandleDelete)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	const opType = "CREATE_CATEGORY"

	var req models.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "invalid request body", opType)
	}
	if errs := h.validate.CreateCategory(&req); len(errs) > 0 {
		return respondValidation(c, errs, opType)
	}

	category, err := h.service.Create(c.Context(), req)
	if err != nil {
		log.Printf("error creating category: %v", err)
		return respondError(c, err, opType)
	}
	return respondCreated(c, category, opType)
}

// HandleList returns all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	const opType = "LIST_CATEGORIES"

	categories, err := h.service.List(c.Context())
	if err != nil {
		log.Printf("error listing categories: %v", err)
		return respondError(c, err, opType)
	}
	return respondOK(c, categories, opType)
}

// HandleGetByID returns a single category.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	const opType = "GET_CATEGORY"

	id := c.Params("id")
	category, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		log.Printf("error getting category %s: %v", id, err)
		return respondError(c, err, opType)
	}
	if category == nil {
		return respondNotFound(c, "category not found", opType)
	}
	return respondOK(c, category, opType)
}

// HandleDelete removes a category without products.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	const opType = "DELETE_CATEGORY"

	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		log.Printf("error deleting category %s: %v", id, err)
		return respondError(c, err, opType)
	}
	return respondOK(c, fiber.Map{"id": id}, opType)
}
