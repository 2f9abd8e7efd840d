package repo

import (
	"context"

	"github.com/mshelkov/marketplace/internal/models"
)

func (r *GormRepo) StoreByOwner(ctx context.Context, ownerID uint) (*models.Store, error) {
	var store models.Store
	if err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *GormRepo) CreateStore(ctx context.Context, s *models.Store) error {
	return r.DB.WithContext(ctx).Create(s).Error
}
