package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"github.com/nikolayk812/orderform-demo/internal/port"
)

// OrderService turns a completed order form into a persisted order.
type OrderService struct {
	forms    *FormService
	products port.ProductRepository
	orders   port.OrderRepository
	now      func() time.Time
}

func NewOrderService(forms *FormService, products port.ProductRepository, orders port.OrderRepository) (*OrderService, error) {
	if forms == nil {
		return nil, fmt.Errorf("form service is nil")
	}
	if products == nil {
		return nil, fmt.Errorf("products repository is nil")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders repository is nil")
	}

	return &OrderService{
		forms:    forms,
		products: products,
		orders:   orders,
		now:      time.Now,
	}, nil
}

// Submit validates the form and stores it as a pending order. Every row needs
// a product and a quantity of at least 1 that fits in an int32; the order total equals the form total.
func (s *OrderService) Submit(ctx context.Context, form orderform.Form) (domain.Order, error) {
	form, err := s.forms.Refresh(ctx, form)
	if err != nil {
		return domain.Order{}, fmt.Errorf("forms.Refresh: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(form.Rows))
	for i, row := range form.Rows {
		if !row.HasProduct() {
			return domain.Order{}, fmt.Errorf("row[%d]: %w", i+1, ErrMissingProduct)
		}

		quantity := orderform.ParseQuantity(row.Quantity)
		// a saturated quantity is larger than anything that can be stored
		if quantity < 1 || quantity >= math.MaxInt32 {
			return domain.Order{}, fmt.Errorf("row[%d] quantity[%s]: %w", i+1, row.Quantity, ErrInvalidQuantity)
		}

		product, err := s.products.GetProduct(ctx, row.ProductID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("products.GetProduct: %w", err)
		}

		items = append(items, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   row.UnitPrice,
		})
	}

	createdAt := s.now().UTC().Truncate(time.Microsecond)
	id := uuid.New()

	order := domain.Order{
		ID:        id,
		Number:    domain.OrderNumber(id, createdAt),
		Status:    domain.OrderStatusPending,
		Currency:  form.Currency,
		Items:     items,
		Total:     form.Total(),
		CreatedAt: createdAt,
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if errors.Is(err, port.ErrOrderNotFound) {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}
