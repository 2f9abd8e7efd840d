package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type ProductService struct {
	Repo *repo.GormRepo
}

type CreateProductParams struct {
	CategoryID  uint
	BrandID     uint
	Title       string
	Description string
	Images      []string
	Sizes       []string
	Colors      []string
	Tags        []string
	Price       float64
	NewPrice    *float64
	StockCount  uint
}

func (s *ProductService) Create(ctx context.Context, ownerID uint, params CreateProductParams) (*models.Product, error) {
	if params.CategoryID == 0 || params.BrandID == 0 ||
		strings.TrimSpace(params.Title) == "" ||
		strings.TrimSpace(params.Description) == "" ||
		params.Price <= 0 {
		return nil, ErrValidation
	}

	store, err := s.Repo.StoreByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoStore
		}
		return nil, err
	}

	product := models.Product{
		StoreID:     store.ID,
		CategoryID:  params.CategoryID,
		BrandID:     params.BrandID,
		Title:       params.Title,
		Description: params.Description,
		Images:      params.Images,
		Sizes:       params.Sizes,
		Colors:      params.Colors,
		Tags:        params.Tags,
		Price:       params.Price,
		NewPrice:    params.NewPrice,
		StockCount:  params.StockCount,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	return s.Repo.ProductByID(ctx, product.ID)
}

func (s *ProductService) StoreProducts(ctx context.Context, ownerID uint) ([]models.Product, error) {
	store, err := s.Repo.StoreByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoStore
		}
		return nil, err
	}
	return s.Repo.ProductsByStore(ctx, store.ID)
}

func (s *ProductService) PublicProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, error) {
	return s.Repo.PublicProducts(ctx, f)
}

func (s *ProductService) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

type ProductPatch struct {
	CategoryID  *uint
	BrandID     *uint
	Title       *string
	Description *string
	Images      []string
	Sizes       []string
	Colors      []string
	Tags        []string
	Price       *float64
	NewPrice    *float64
	StockCount  *uint
}

// Update is owner-gated: only the owner of the product's store may change
// it. Setting stock to zero archives the product, restocking unarchives.
func (s *ProductService) Update(ctx context.Context, callerID, id uint, patch ProductPatch) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if patch.CategoryID != nil {
		product.CategoryID = *patch.CategoryID
	}
	if patch.BrandID != nil {
		product.BrandID = *patch.BrandID
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, ErrValidation
		}
		product.Title = *patch.Title
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Images != nil {
		product.Images = patch.Images
	}
	if patch.Sizes != nil {
		product.Sizes = patch.Sizes
	}
	if patch.Colors != nil {
		product.Colors = patch.Colors
	}
	if patch.Tags != nil {
		product.Tags = patch.Tags
	}
	if patch.Price != nil {
		if *patch.Price <= 0 {
			return nil, ErrValidation
		}
		product.Price = *patch.Price
	}
	if patch.NewPrice != nil {
		product.NewPrice = patch.NewPrice
	}
	if patch.StockCount != nil {
		product.StockCount = *patch.StockCount
		if *patch.StockCount == 0 {
			now := time.Now()
			product.IsArchived = true
			product.ArchivedAt = &now
		} else {
			product.IsArchived = false
			product.ArchivedAt = nil
		}
	}

	product.Store = nil
	product.Brand = nil
	product.Category = nil
	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	return s.Repo.ProductByID(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, callerID, id uint) error {
	if _, err := s.ownedProduct(ctx, callerID, id); err != nil {
		return err
	}
	return s.Repo.DeleteProduct(ctx, id)
}

func (s *ProductService) ownedProduct(ctx context.Context, callerID, id uint) (*models.Product, error) {
	product, err := s.Repo.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Store == nil || product.Store.OwnerID != callerID {
		return nil, ErrForbidden
	}
	return product, nil
}
