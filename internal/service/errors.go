package service

import "errors"

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrMissingProduct  = errors.New("every item must have a product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOrderNotFound   = errors.New("order not found")
)
