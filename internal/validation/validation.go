// Package validation checks request payloads against the static per-operation
// rule tables and sanitizes string fields in place. It never touches the
// database; row-dependent checks (uniqueness, references) belong to the
// services.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"

	"muattrans/internal/models"
)

var skuPattern = regexp.MustCompile(`^[A-Z0-9-_]+$`)

// FieldError is a single field-level violation.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Validator validates and sanitizes catalog request payloads.
type Validator struct {
	validate *validator.Validate
	policy   *bluemonday.Policy
}

// New creates a Validator with the sku rule registered.
func New() *Validator {
	v := validator.New()
	// Field names in violations should match the JSON payload, not Go names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		return skuPattern.MatchString(fl.Field().String())
	})
	return &Validator{
		validate: v,
		policy:   bluemonday.StrictPolicy(),
	}
}

// clean trims whitespace and strips any markup from a string field.
func (v *Validator) clean(s string) string {
	return strings.TrimSpace(v.policy.Sanitize(s))
}

func (v *Validator) cleanPtr(s *string) {
	if s != nil {
		*s = v.clean(*s)
	}
}

func (v *Validator) cleanSlice(ss []string) {
	for i := range ss {
		ss[i] = v.clean(ss[i])
	}
}

// check runs the struct tags and converts violations into the ordered
// field-error list.
func (v *Validator) check(s any) []FieldError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(validationErrors))
	for _, e := range validationErrors {
		out = append(out, FieldError{
			Field:   e.Field(),
			Rule:    e.Tag(),
			Message: messageFor(e),
		})
	}
	return out
}

func messageFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", e.Field())
	case "min":
		return fmt.Sprintf("field '%s' must be at least %s characters or items", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters or items", e.Field(), e.Param())
	case "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of [%s]", e.Field(), e.Param())
	case "uuid":
		return fmt.Sprintf("field '%s' must be a valid identifier", e.Field())
	case "sku":
		return fmt.Sprintf("field '%s' may only contain A-Z, 0-9, '-' and '_'", e.Field())
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
	}
}

// CreateProduct sanitizes and validates a create payload.
func (v *Validator) CreateProduct(req *models.CreateProductRequest) []FieldError {
	req.Name = v.clean(req.Name)
	req.Description = v.clean(req.Description)
	req.SKU = strings.TrimSpace(req.SKU)
	req.Status = strings.TrimSpace(req.Status)
	v.cleanSlice(req.Tags)
	return v.check(req)
}

// UpdateProduct sanitizes and validates an update patch.
func (v *Validator) UpdateProduct(req *models.UpdateProductRequest) []FieldError {
	v.cleanPtr(req.Name)
	v.cleanPtr(req.Description)
	if req.SKU != nil {
		*req.SKU = strings.TrimSpace(*req.SKU)
	}
	v.cleanSlice(req.Tags)
	return v.check(req)
}

// BulkUpdateProducts validates a bulk patch. The allow-list itself is the
// struct shape; unknown keys are rejected before this runs.
func (v *Validator) BulkUpdateProducts(req *models.BulkUpdateProductsRequest) []FieldError {
	errs := v.check(req)
	if req.Status == nil && req.IsVisible == nil {
		errs = append(errs, FieldError{
			Field:   "status",
			Rule:    "required_without",
			Message: "at least one patch field (status, isVisible) is required",
		})
	}
	return errs
}

// ListProducts sanitizes and validates list query parameters.
func (v *Validator) ListProducts(q *models.ListProductsQuery) []FieldError {
	q.Search = v.clean(q.Search)
	return v.check(q)
}

// Stats validates stats query parameters.
func (v *Validator) Stats(q *models.StatsQuery) []FieldError {
	return v.check(q)
}

// CreateCategory sanitizes and validates a category create payload.
func (v *Validator) CreateCategory(req *models.CreateCategoryRequest) []FieldError {
	req.Name = v.clean(req.Name)
	req.Description = v.clean(req.Description)
	return v.check(req)
}
