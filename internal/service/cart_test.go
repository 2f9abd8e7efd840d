package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshelkov/marketplace/internal/models"
)

func seedProduct(t *testing.T, svc *CartService, title string, price float64) models.Product {
	t.Helper()
	p := models.Product{
		StoreID: 1, CategoryID: 1, BrandID: 1,
		Title: title, Description: "d", Price: price, StockCount: 10,
	}
	require.NoError(t, svc.Repo.DB.Create(&p).Error)
	return p
}

func TestCartService_Add(t *testing.T) {
	t.Parallel()

	svc := &CartService{Repo: newTestRepo(t)}
	ctx := context.Background()
	p := seedProduct(t, svc, "socks", 4)

	item, err := svc.Add(ctx, 1, p.ID, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, item.Quantity)

	_, err = svc.Add(ctx, 1, p.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyInCart)

	// another user can hold the same product
	_, err = svc.Add(ctx, 2, p.ID, 1)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 1, 0, 1)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Add(ctx, 1, p.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCartService_RemoveAndClear(t *testing.T) {
	t.Parallel()

	svc := &CartService{Repo: newTestRepo(t)}
	ctx := context.Background()
	a := seedProduct(t, svc, "a", 1)
	b := seedProduct(t, svc, "b", 2)

	_, err := svc.Add(ctx, 1, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 1, b.ID, 1)
	require.NoError(t, err)

	_, err = svc.Remove(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	deleted, err := svc.Remove(ctx, 1, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	cleared, err := svc.Clear(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)

	items, err := svc.Items(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_Checkout(t *testing.T) {
	t.Parallel()

	svc := &CartService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, _, err := svc.Checkout(ctx, 1)
	assert.ErrorIs(t, err, ErrValidation)

	full := seedProduct(t, svc, "full price", 100)
	discounted := seedProduct(t, svc, "on sale", 100)
	sale := 60.0
	require.NoError(t, svc.Repo.DB.Model(&discounted).Update("new_price", sale).Error)

	_, err = svc.Add(ctx, 1, full.ID, 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 1, discounted.ID, 1)
	require.NoError(t, err)

	order, items, err := svc.Checkout(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, order.UserID)
	// 2*100 at full price plus one discounted unit
	assert.EqualValues(t, 260, order.Total)
	assert.Len(t, items, 2)

	left, err := svc.Items(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, left)
}
