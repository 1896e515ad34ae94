package services

import "errors"

var (
	ErrInvalidID          = errors.New("invalid id")
	ErrCartNotFound       = errors.New("cart not found")
	ErrItemNotFound       = errors.New("cart item not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrInvalidSize        = errors.New("size is not available for this product")
	ErrInvalidProduct     = errors.New("product must have a title, a category and a non-negative price")
	ErrUserExists         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignup      = errors.New("name, a valid email and a password of at least 6 characters are required")
)
