package repo

import (
	"context"

	"github.com/mshelkov/marketplace/internal/models"
)

// Categories returns the flat view: parent and immediate children resolved,
// direct product counts attached, alphabetical.
func (r *GormRepo) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.DB.WithContext(ctx).
		Preload("Parent").
		Preload("Children").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	counts, err := r.categoryProductCounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		categories[i].ProductCount = counts[categories[i].ID]
	}

	return categories, nil
}

func (r *GormRepo) categoryProductCounts(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		CategoryID uint
		N          int64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Select("category_id, COUNT(*) AS n").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.CategoryID] = row.N
	}
	return counts, nil
}

// AllCategories loads the bare rows in one pass for the in-memory tree build.
func (r *GormRepo) AllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) CategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) CategoryWithRelations(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.DB.WithContext(ctx).
		Preload("Parent").
		Preload("Children").
		First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// SiblingExists reports whether another category with the same name shares
// the parent. Root siblings are compared with parent_id IS NULL.
func (r *GormRepo) SiblingExists(ctx context.Context, name string, parentID *uint, excludeID uint) (bool, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name)
	if parentID == nil {
		q = q.Where("parent_id IS NULL")
	} else {
		q = q.Where("parent_id = ?", *parentID)
	}
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

func (r *GormRepo) CountCategoryChildren(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("parent_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *GormRepo) CountCategoryProducts(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&count).Error
	return count, err
}
