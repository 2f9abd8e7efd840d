package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
)

type CategoryService struct {
	Repo *repo.GormRepo
}

func (s *CategoryService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.Categories(ctx)
}

// CategoriesTree loads all rows in one pass and nests them in memory, so
// the storage round trip count stays at one regardless of depth. Rows come
// back sorted by name, which keeps every children slice alphabetical.
func (s *CategoryService) CategoriesTree(ctx context.Context) ([]models.Category, error) {
	flat, err := s.Repo.AllCategories(ctx)
	if err != nil {
		return nil, err
	}

	children := make(map[uint][]models.Category, len(flat))
	for _, c := range flat {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var attach func(node models.Category) models.Category
	attach = func(node models.Category) models.Category {
		kids := children[node.ID]
		node.Children = make([]models.Category, 0, len(kids))
		for _, kid := range kids {
			node.Children = append(node.Children, attach(kid))
		}
		return node
	}

	roots := make([]models.Category, 0)
	for _, c := range flat {
		if c.ParentID == nil {
			roots = append(roots, attach(c))
		}
	}
	return roots, nil
}

func (s *CategoryService) Create(ctx context.Context, name string, parentID *uint) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	if parentID != nil {
		if _, err := s.Repo.CategoryByID(ctx, *parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	exists, err := s.Repo.SiblingExists(ctx, name, parentID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSibling
	}

	category := models.Category{Name: name, ParentID: parentID}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}

	return s.Repo.CategoryWithRelations(ctx, category.ID)
}

type CategoryPatch struct {
	Name      *string
	ParentID  *uint
	SetParent bool
}

func (s *CategoryService) Update(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	category, err := s.Repo.CategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := category.Name
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrValidation
		}
	}

	parentID := category.ParentID
	if patch.SetParent {
		parentID = patch.ParentID
		if parentID != nil {
			if *parentID == id {
				return nil, ErrSelfParent
			}
			if err := s.checkAncestry(ctx, id, *parentID); err != nil {
				return nil, err
			}
		}
	}

	exists, err := s.Repo.SiblingExists(ctx, name, parentID, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSibling
	}

	category.Name = name
	category.ParentID = parentID
	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}

	return s.Repo.CategoryWithRelations(ctx, id)
}

// checkAncestry walks the candidate parent's chain upward. The existing
// tree is acyclic, so the walk terminates at a root in at most tree-depth
// steps; hitting nodeID on the way means the new edge would close a cycle.
func (s *CategoryService) checkAncestry(ctx context.Context, nodeID, candidateParentID uint) error {
	current, err := s.Repo.CategoryByID(ctx, candidateParentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	for {
		if current.ID == nodeID {
			return ErrCyclicParent
		}
		if current.ParentID == nil {
			return nil
		}
		current, err = s.Repo.CategoryByID(ctx, *current.ParentID)
		if err != nil {
			return err
		}
	}
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Repo.CategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	children, err := s.Repo.CountCategoryChildren(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 {
		return ErrHasChildren
	}

	products, err := s.Repo.CountCategoryProducts(ctx, id)
	if err != nil {
		return err
	}
	if products > 0 {
		return &HasProductsError{Count: products}
	}

	return s.Repo.DeleteCategory(ctx, id)
}
