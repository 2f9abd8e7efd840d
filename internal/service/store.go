package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type StoreService struct {
	Repo *repo.GormRepo
}

type StoreParams struct {
	Name        string
	Description string
	Logo        string
	Address     string
	Region      string
}

// CreateStore keeps the friendly pre-check, but the one-store-per-owner
// rule is ultimately held by the unique index on owner_id.
func (s *StoreService) CreateStore(ctx context.Context, ownerID uint, params StoreParams) (*models.Store, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrValidation
	}

	if _, err := s.Repo.StoreByOwner(ctx, ownerID); err == nil {
		return nil, ErrStoreExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	store := models.Store{
		Name:        strings.TrimSpace(params.Name),
		Description: params.Description,
		Logo:        params.Logo,
		Address:     params.Address,
		Region:      params.Region,
		OwnerID:     ownerID,
	}
	if err := s.Repo.CreateStore(ctx, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

func (s *StoreService) SellerProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.Repo.UserWithStores(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
