package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type BrandService struct {
	Repo *repo.GormRepo
}

func (s *BrandService) Brands(ctx context.Context, categoryID *uint) ([]models.Brand, error) {
	return s.Repo.Brands(ctx, categoryID)
}

func (s *BrandService) BrandByID(ctx context.Context, id uint) (*models.Brand, error) {
	brand, err := s.Repo.BrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Create(ctx context.Context, name, logoURL string) (*models.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	brand := models.Brand{Name: name, LogoURL: logoURL}
	if err := s.Repo.CreateBrand(ctx, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

type BrandPatch struct {
	Name    *string
	LogoURL *string
}

func (s *BrandService) Update(ctx context.Context, id uint, patch BrandPatch) (*models.Brand, error) {
	brand, err := s.Repo.BrandRowByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrValidation
		}
		brand.Name = name
	}
	if patch.LogoURL != nil {
		brand.LogoURL = *patch.LogoURL
	}

	if err := s.Repo.SaveBrand(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteBrand(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
