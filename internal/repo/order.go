package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
)

var (
	ErrEmptyCart       = errors.New("no items in cart")
	ErrProductNotFound = errors.New("product not found")
)

// CreateOrderFromCart turns the user's cart into an order in one
// transaction: totals are computed from current prices, the cart is cleared.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, userID uint) (*models.Order, []models.OrderItem, error) {
	var (
		order      models.Order
		orderItems []models.OrderItem
	)

	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var total float64
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			price := p.Price
			if p.NewPrice != nil {
				price = *p.NewPrice
			}
			total += float64(it.Quantity) * price
		}

		order = models.Order{
			UserID:    userID,
			Total:     total,
			Status:    "new",
			CreatedAt: time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				UserID:    userID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})

	if txErr != nil {
		return nil, nil, txErr
	}
	return &order, orderItems, nil
}
