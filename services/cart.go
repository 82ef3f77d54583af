package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront-api/apierror"
	"storefront-api/models"
)

// CartService is the cart consistency engine. Every mutation runs in a single
// transaction: stock is consumed with an atomic conditional update against the
// product row first, and the cart line write happens downstream of that
// successful reservation. A failed operation leaves both the cart and the
// product counter in their pre-call state.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, or an empty in-memory cart when none has
// been created yet. Reading never persists anything.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptyCart(userID), nil
		}
		return nil, apierror.Wrap(apierror.Unknown, "Failed to fetch cart", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// AddItem reserves quantity units of the product and creates or grows the
// matching cart line. The unit price is snapshotted when the line is first
// created; adding more units later keeps the original snapshot.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apierror.New(apierror.Validation, "Quantity must be greater than 0")
	}

	var out *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.New(apierror.NotFound, "Product not found")
			}
			return err
		}
		if product.Stock < 1 {
			return apierror.New(apierror.OutOfStock, "Product is out of stock")
		}

		cart, err := s.cartForUpdate(tx, userID)
		if err != nil {
			return err
		}

		held := 0
		if item := cart.FindItem(productID); item != nil {
			held = item.Quantity
		}

		ok, err := reserveStock(tx, productID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			remaining, rerr := currentStock(tx, productID)
			if rerr != nil {
				return rerr
			}
			return apierror.Newf(apierror.InsufficientStock, "Only %d items available", remaining+held)
		}

		if item := cart.FindItem(productID); item != nil {
			item.Quantity += quantity
		} else {
			cart.Items = append(cart.Items, models.NewCartItem(cart.ID, productID, quantity, product.Price))
		}
		cart.RecomputeTotals()

		if err := saveLine(tx, cart.FindItem(productID)); err != nil {
			return err
		}
		if err := saveTotals(tx, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return out, nil
}

// UpdateItem sets an existing line to an absolute quantity, re-validating
// against current stock. Growing a line reserves the difference; shrinking it
// releases the difference. Quantity zero is not a delete — use RemoveItem.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, apierror.New(apierror.Validation, "Quantity must be at least 1")
	}

	var out *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.New(apierror.NotFound, "Product not found")
			}
			return err
		}

		cart, err := s.loadCart(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return apierror.New(apierror.NotFound, "Cart not found")
		}
		item := cart.FindItem(productID)
		if item == nil {
			return apierror.New(apierror.NotFound, "Product not in cart")
		}

		delta := quantity - item.Quantity
		if delta > 0 {
			ok, err := reserveStock(tx, productID, delta)
			if err != nil {
				return err
			}
			if !ok {
				remaining, rerr := currentStock(tx, productID)
				if rerr != nil {
					return rerr
				}
				return apierror.Newf(apierror.InsufficientStock, "Only %d items available", remaining+item.Quantity)
			}
		} else if delta < 0 {
			if err := releaseStock(tx, productID, -delta); err != nil {
				return err
			}
		}

		item.Quantity = quantity
		cart.RecomputeTotals()

		if err := saveLine(tx, item); err != nil {
			return err
		}
		if err := saveTotals(tx, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return out, nil
}

// RemoveItem deletes the line for the product and releases its reservation.
// Removing an absent line, or from a user with no cart, is a successful no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	var out *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.loadCart(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			out = emptyCart(userID)
			return nil
		}
		item := cart.FindItem(productID)
		if item == nil {
			out = cart
			return nil
		}

		if err := releaseStock(tx, productID, item.Quantity); err != nil {
			return err
		}
		if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if it.ProductID != productID {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
		cart.RecomputeTotals()

		if err := saveTotals(tx, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return out, nil
}

// ClearCart removes every line and releases all reservations. Idempotent.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	var out *models.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.loadCart(tx, userID)
		if err != nil {
			return err
		}
		if cart == nil {
			out = emptyCart(userID)
			return nil
		}

		for _, item := range cart.Items {
			if err := releaseStock(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		cart.Items = []models.CartItem{}
		cart.RecomputeTotals()

		if err := saveTotals(tx, cart); err != nil {
			return err
		}
		out = cart
		return nil
	})
	if err != nil {
		return nil, apierror.From(err)
	}
	return out, nil
}

// loadCart fetches a user's cart with its lines, or nil when none exists.
func (s *CartService) loadCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// cartForUpdate loads the cart, creating it lazily on first add. A concurrent
// first add loses the unique-index race and falls back to the winner's row.
func (s *CartService) cartForUpdate(tx *gorm.DB, userID string) (*models.Cart, error) {
	cart, err := s.loadCart(tx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	fresh := models.NewCart(userID)
	if err := tx.Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.loadCart(tx, userID)
		}
		return nil, err
	}
	return fresh, nil
}

// reserveStock is the single atomic stock-consumption primitive: a conditional
// decrement that only fires while enough units remain. Zero rows affected
// means the reservation lost to concurrent consumers or to scarce stock.
func reserveStock(tx *gorm.DB, productID string, quantity int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// releaseStock returns previously reserved units to the product counter.
func releaseStock(tx *gorm.DB, productID string, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).Error
}

func currentStock(tx *gorm.DB, productID string) (int, error) {
	var product models.Product
	err := tx.Select("stock").First(&product, "id = ?", productID).Error
	return product.Stock, err
}

func saveLine(tx *gorm.DB, item *models.CartItem) error {
	return tx.Save(item).Error
}

func saveTotals(tx *gorm.DB, cart *models.Cart) error {
	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]any{
			"total_items": cart.TotalItems,
			"total_price": cart.TotalPrice,
		}).Error
}

func emptyCart(userID string) *models.Cart {
	return &models.Cart{UserID: userID, Items: []models.CartItem{}}
}
