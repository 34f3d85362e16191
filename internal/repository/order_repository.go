package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderform-demo/internal/db"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/port"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) (port.OrderRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}

	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}, nil
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("order has no items")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		err := q.CreateOrder(ctx, db.CreateOrderParams{
			OrderID:     order.ID,
			OrderNumber: order.Number,
			Status:      string(order.Status),
			Currency:    order.Currency.String(),
			TotalAmount: order.Total,
			CreatedAt:   order.CreatedAt,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for i, item := range order.Items {
			if item.Quantity <= 0 || item.Quantity > math.MaxInt32 {
				return struct{}{}, fmt.Errorf("item[%d] quantity[%d] is not valid", i, item.Quantity)
			}

			err := q.AddOrderItem(ctx, db.AddOrderItemParams{
				OrderID:     order.ID,
				Position:    int32(i),
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Quantity:    int32(item.Quantity),
				UnitPrice:   item.UnitPrice,
			})
			if err != nil {
				return struct{}{}, fmt.Errorf("q.AddOrderItem: %w", err)
			}
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		row, err := q.GetOrder(ctx, orderID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, port.ErrOrderNotFound)
		}
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
		}

		itemRows, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		order, err := mapOrderToDomain(row, itemRows)
		if err != nil {
			return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
		}

		return order, nil
	})
}

func mapOrderToDomain(row db.Order, itemRows []db.GetOrderItemsRow) (domain.Order, error) {
	parsedCurrency, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	status, err := domain.ParseOrderStatus(row.Status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ParseOrderStatus: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(itemRows))
	for _, itemRow := range itemRows {
		items = append(items, domain.OrderItem{
			ProductID:   itemRow.ProductID,
			ProductName: itemRow.ProductName,
			Quantity:    int(itemRow.Quantity),
			UnitPrice:   itemRow.UnitPrice,
		})
	}

	return domain.Order{
		ID:        row.OrderID,
		Number:    row.OrderNumber,
		Status:    status,
		Currency:  parsedCurrency,
		Items:     items,
		Total:     row.TotalAmount,
		CreatedAt: row.CreatedAt,
	}, nil
}
