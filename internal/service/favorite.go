package service

import (
	"context"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID uint) (*models.Favorite, error) {
	if productID == 0 {
		return nil, ErrValidation
	}

	exists, err := s.Repo.FavoriteExists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorite
	}

	favorite := models.Favorite{UserID: userID, ProductID: productID}
	if err := s.Repo.CreateFavorite(ctx, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uint) error {
	if productID == 0 {
		return ErrValidation
	}

	deleted, err := s.Repo.DeleteFavorite(ctx, userID, productID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
