package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products. ProductCount is denormalized: it is only ever
// adjusted inside the same transaction as the product write it summarizes,
// and must equal the number of non-deleted products referencing the category.
type Category struct {
	ID           string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name,where:deleted_at IS NULL"`
	Description  string         `json:"description" gorm:"type:text"`
	ProductCount int            `json:"productCount" gorm:"not null;default:0"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
