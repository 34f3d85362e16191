package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/port"
)

// InMemoryProductRepository keeps the catalog in a map. It backs local runs
// without DATABASE_URL and the handler tests.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]domain.Product
}

func NewInMemoryProduct(products ...domain.Product) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[uuid.UUID]domain.Product, len(products)),
	}

	for _, p := range products {
		r.products[p.ID] = p
	}

	return r
}

// ListProducts returns products ordered by name, then id, like the Postgres query.
func (r *InMemoryProductRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})

	return products, nil
}

func (r *InMemoryProductRepository) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	if productID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", productID, port.ErrProductNotFound)
	}

	return p, nil
}

func (r *InMemoryProductRepository) AddProduct(_ context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}
	if product.Name == "" {
		return fmt.Errorf("product name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; exists {
		return fmt.Errorf("product[%s] already exists", product.ID)
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	r.products[product.ID] = product

	return nil
}

type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
}

func NewInMemoryOrder() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[uuid.UUID]domain.Order),
	}
}

func (r *InMemoryOrderRepository) CreateOrder(_ context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return fmt.Errorf("order[%s] already exists", order.ID)
	}

	order.Items = slices.Clone(order.Items)
	r.orders[order.ID] = order

	return nil
}

func (r *InMemoryOrderRepository) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, port.ErrOrderNotFound)
	}

	order.Items = slices.Clone(order.Items)

	return order, nil
}
