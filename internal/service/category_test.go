package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshelkov/marketplace/internal/models"
)

func newTestCategoryService(t *testing.T) *CategoryService {
	t.Helper()
	return &CategoryService{Repo: newTestRepo(t)}
}

func TestCategoryService_Create(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "  Clothing  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "Clothing", root.Name)
	assert.Nil(t, root.ParentID)

	child, err := svc.Create(ctx, "Shoes", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)

	_, err = svc.Create(ctx, "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	missing := uint(999)
	_, err = svc.Create(ctx, "Orphan", &missing)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCategoryService_Create_DuplicateSiblingScopedToParent(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "Electronics", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Electronics", nil)
	assert.ErrorIs(t, err, ErrDuplicateSibling)

	// same name is fine one level down
	_, err = svc.Create(ctx, "Electronics", &root.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "Electronics", &root.ID)
	assert.ErrorIs(t, err, ErrDuplicateSibling)
}

func TestCategoryService_Update_SelfParent(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, "Books", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, cat.ID, CategoryPatch{SetParent: true, ParentID: &cat.ID})
	assert.ErrorIs(t, err, ErrSelfParent)
}

func TestCategoryService_Update_CycleRejected(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, "A", nil)
	require.NoError(t, err)
	b, err := svc.Create(ctx, "B", &a.ID)
	require.NoError(t, err)
	c, err := svc.Create(ctx, "C", &b.ID)
	require.NoError(t, err)

	// A -> C would close A -> B -> C -> A
	_, err = svc.Update(ctx, a.ID, CategoryPatch{SetParent: true, ParentID: &c.ID})
	assert.ErrorIs(t, err, ErrCyclicParent)

	// moving C directly under A stays acyclic
	moved, err := svc.Update(ctx, c.ID, CategoryPatch{SetParent: true, ParentID: &a.ID})
	require.NoError(t, err)
	require.NotNil(t, moved.ParentID)
	assert.Equal(t, a.ID, *moved.ParentID)
}

func TestCategoryService_Update_ReRoot(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "Outdoor", nil)
	require.NoError(t, err)
	child, err := svc.Create(ctx, "Tents", &root.ID)
	require.NoError(t, err)

	// explicit null parent makes the node a root
	rerooted, err := svc.Update(ctx, child.ID, CategoryPatch{SetParent: true, ParentID: nil})
	require.NoError(t, err)
	assert.Nil(t, rerooted.ParentID)

	// patch without SetParent leaves the parent alone
	name := "Tents & Shelters"
	renamed, err := svc.Update(ctx, child.ID, CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, renamed.Name)
	assert.Nil(t, renamed.ParentID)
}

func TestCategoryService_Update_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)

	name := "anything"
	_, err := svc.Update(context.Background(), 999, CategoryPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Delete_Guards(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 999), ErrNotFound)

	root, err := svc.Create(ctx, "Garden", nil)
	require.NoError(t, err)
	child, err := svc.Create(ctx, "Tools", &root.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, root.ID), ErrHasChildren)

	db := svc.Repo.DB
	require.NoError(t, db.Create(&models.Product{
		StoreID: 1, CategoryID: child.ID, BrandID: 1,
		Title: "rake", Description: "a rake", Price: 5,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		StoreID: 1, CategoryID: child.ID, BrandID: 1,
		Title: "spade", Description: "a spade", Price: 7,
	}).Error)

	err = svc.Delete(ctx, child.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrHasProducts)
	var hasProducts *HasProductsError
	require.ErrorAs(t, err, &hasProducts)
	assert.EqualValues(t, 2, hasProducts.Count)

	require.NoError(t, db.Where("category_id = ?", child.ID).Delete(&models.Product{}).Error)
	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, root.ID))
}

func TestCategoryService_CategoriesTree(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	clothing, err := svc.Create(ctx, "Clothing", nil)
	require.NoError(t, err)
	electronics, err := svc.Create(ctx, "Electronics", nil)
	require.NoError(t, err)

	shoes, err := svc.Create(ctx, "Shoes", &clothing.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Jackets", &clothing.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Sneakers", &shoes.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Boots", &shoes.ID)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Phones", &electronics.ID)
	require.NoError(t, err)

	tree, err := svc.CategoriesTree(ctx)
	require.NoError(t, err)

	// roots only, alphabetical
	require.Len(t, tree, 2)
	assert.Equal(t, "Clothing", tree[0].Name)
	assert.Equal(t, "Electronics", tree[1].Name)

	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Jackets", tree[0].Children[0].Name)
	assert.Equal(t, "Shoes", tree[0].Children[1].Name)

	shoesNode := tree[0].Children[1]
	require.Len(t, shoesNode.Children, 2)
	assert.Equal(t, "Boots", shoesNode.Children[0].Name)
	assert.Equal(t, "Sneakers", shoesNode.Children[1].Name)

	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Phones", tree[1].Children[0].Name)
	assert.Empty(t, tree[1].Children[0].Children)
}

func TestCategoryService_Categories_FlatWithCounts(t *testing.T) {
	t.Parallel()

	svc := newTestCategoryService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, "Music", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Vinyl", &root.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DB.Create(&models.Product{
		StoreID: 1, CategoryID: root.ID, BrandID: 1,
		Title: "album", Description: "an album", Price: 20,
	}).Error)

	flat, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, flat, 2)

	byName := map[string]models.Category{}
	for _, c := range flat {
		byName[c.Name] = c
	}
	assert.EqualValues(t, 1, byName["Music"].ProductCount)
	assert.EqualValues(t, 0, byName["Vinyl"].ProductCount)
}
