package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          string   `gorm:"primaryKey;size:36" json:"id"`
	Name        string   `gorm:"uniqueIndex;not null" json:"name"`
	Price       float64  `gorm:"not null" json:"price"`
	Description string   `gorm:"not null" json:"description"`
	Images      []string `gorm:"serializer:json" json:"images"`
	Category    string   `gorm:"index" json:"category"`
	Brand       string   `json:"brand"`
	// Stock is the number of units still available for reservation. Cart
	// operations adjust it with conditional updates, never plain writes.
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Rating      float64   `gorm:"default:0" json:"rating"`
	ReviewCount int       `gorm:"default:0" json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProduct(name string, price float64, description string, images []string, category, brand string, stock int) *Product {
	return &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(name),
		Price:       price,
		Description: strings.TrimSpace(description),
		Images:      images,
		Category:    strings.TrimSpace(category),
		Brand:       strings.TrimSpace(brand),
		Stock:       stock,
	}
}
