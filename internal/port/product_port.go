package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	AddProduct(ctx context.Context, product domain.Product) error
}
