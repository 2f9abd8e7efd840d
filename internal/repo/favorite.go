package repo

import (
	"context"

	"github.com/mshelkov/marketplace/internal/models"
)

func (r *GormRepo) FavoriteExists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateFavorite(ctx context.Context, f *models.Favorite) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) DeleteFavorite(ctx context.Context, userID, productID uint) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	return res.RowsAffected, res.Error
}
