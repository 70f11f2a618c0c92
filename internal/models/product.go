package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductStatus is the lifecycle status of a product.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// Valid reports whether s is one of the allowed status values.
func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product represents a catalog product. Name is unique per category and SKU
// is unique globally, both among non-deleted rows only — the partial unique
// indexes back the application-level checks so a racing create fails at
// commit instead of producing a duplicate row.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string           `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_products_name_category,where:deleted_at IS NULL"`
	Description string           `json:"description" gorm:"type:text"`
	SKU         string           `json:"sku" gorm:"column:sku;type:varchar(50);not null;uniqueIndex:idx_products_sku,where:deleted_at IS NULL"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(16,2);not null"`
	Stock       int              `json:"stock" gorm:"not null;default:0"`
	Weight      *decimal.Decimal `json:"weight,omitempty" gorm:"type:decimal(10,2)"`
	Status      ProductStatus    `json:"status" gorm:"type:varchar(16);not null;default:active"`
	IsVisible   bool             `json:"isVisible" gorm:"not null;default:true"`
	Tags        []string         `json:"tags,omitempty" gorm:"serializer:json"`

	CategoryID string    `json:"categoryId" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_products_name_category,where:deleted_at IS NULL"`
	Category   *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`

	CreatedBy *string `json:"createdBy,omitempty" gorm:"type:varchar(36)"`
	Creator   *User   `json:"creator,omitempty" gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
	UpdatedBy *string `json:"updatedBy,omitempty" gorm:"type:varchar(36)"`
	DeletedBy *string `json:"-" gorm:"type:varchar(36)"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
