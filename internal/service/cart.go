package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) Add(ctx context.Context, userID, productID, quantity uint) (*models.CartItem, error) {
	if productID == 0 || quantity == 0 {
		return nil, ErrValidation
	}

	if _, err := s.Repo.CartItemByUserProduct(ctx, userID, productID); err == nil {
		return nil, ErrAlreadyInCart
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.CreateCartItem(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) Items(ctx context.Context, userID uint) ([]models.CartItem, error) {
	return s.Repo.CartItems(ctx, userID)
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint) (int64, error) {
	deleted, err := s.Repo.DeleteCartItem(ctx, userID, productID)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrNotFound
	}
	return deleted, nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) (int64, error) {
	return s.Repo.ClearCart(ctx, userID)
}

func (s *CartService) Checkout(ctx context.Context, userID uint) (*models.Order, []models.OrderItem, error) {
	order, items, err := s.Repo.CreateOrderFromCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) || errors.Is(err, repo.ErrProductNotFound) {
			return nil, nil, ErrValidation
		}
		return nil, nil, err
	}
	return order, items, nil
}
