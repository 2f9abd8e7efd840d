package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
)

// Brands lists all brands, or only brands that have products in the given
// category, newest first.
func (r *GormRepo) Brands(ctx context.Context, categoryID *uint) ([]models.Brand, error) {
	q := r.DB.WithContext(ctx).Model(&models.Brand{})
	if categoryID != nil {
		q = q.Where(
			"id IN (?)",
			r.DB.Model(&models.Product{}).Select("brand_id").Where("category_id = ?", *categoryID),
		)
	}

	var brands []models.Brand
	if err := q.Order("created_at DESC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) BrandRowByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) BrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).Preload("Products").First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) CreateBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) SaveBrand(ctx context.Context, b *models.Brand) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBrand(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Brand{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
