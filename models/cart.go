package models

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	ID     string     `gorm:"primaryKey;size:36" json:"id"`
	UserID string     `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	// TotalItems counts cart lines, not summed quantity. The two disagree as
	// soon as any line has quantity > 1; line count is the documented policy.
	TotalItems int       `gorm:"not null;default:0" json:"total_items"`
	TotalPrice float64   `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    string `gorm:"size:36;index:idx_cart_product,unique" json:"-"`
	ProductID string `gorm:"size:36;index:idx_cart_product,unique" json:"product_id"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	// UnitPrice is snapshotted when the line is first created. Later catalog
	// price changes do not rewrite existing lines.
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	LineTotal float64 `gorm:"not null" json:"line_total"`
}

func NewCart(userID string) *Cart {
	return &Cart{
		ID:     uuid.NewString(),
		UserID: userID,
	}
}

// NewCartItem builds a line with its derived total already computed.
func NewCartItem(cartID, productID string, quantity int, unitPrice float64) CartItem {
	return CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice * float64(quantity),
	}
}

// RecomputeTotals derives the cart aggregates from its lines. Every mutation
// must call this before persisting; totals are never stored out of sync.
func (c *Cart) RecomputeTotals() {
	c.TotalItems = len(c.Items)
	total := 0.0
	for i := range c.Items {
		c.Items[i].LineTotal = c.Items[i].UnitPrice * float64(c.Items[i].Quantity)
		total += c.Items[i].LineTotal
	}
	c.TotalPrice = total
}

// FindItem returns a pointer into Items for the given product, or nil.
func (c *Cart) FindItem(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
