package port

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
}
