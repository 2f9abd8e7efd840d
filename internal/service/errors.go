package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshExpired      = errors.New("refresh token expired")

	ErrStoreExists = errors.New("owner already has a store")
	ErrNoStore     = errors.New("store required")

	ErrParentNotFound   = errors.New("parent category not found")
	ErrSelfParent       = errors.New("category cannot be its own parent")
	ErrCyclicParent     = errors.New("category cannot be moved under its own descendant")
	ErrDuplicateSibling = errors.New("category with this name already exists under the same parent")
	ErrHasChildren      = errors.New("category has child categories")
	ErrHasProducts      = errors.New("category has products")

	ErrAlreadyFavorite = errors.New("already in favorites")
	ErrAlreadyInCart   = errors.New("already in cart")
	ErrInvalidRole     = errors.New("invalid role")
)

// HasProductsError carries the product count the delete check found.
type HasProductsError struct {
	Count int64
}

func (e *HasProductsError) Error() string {
	return fmt.Sprintf("category has %d products", e.Count)
}

func (e *HasProductsError) Is(target error) bool {
	return target == ErrHasProducts
}
