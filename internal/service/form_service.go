package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"github.com/nikolayk812/orderform-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// FormService applies user commands to an order form, taking unit prices from the catalog.
type FormService struct {
	products port.ProductRepository
	currency currency.Unit
}

func NewFormService(products port.ProductRepository, unit currency.Unit) (*FormService, error) {
	if products == nil {
		return nil, fmt.Errorf("products repository is nil")
	}

	return &FormService{
		products: products,
		currency: unit,
	}, nil
}

func (s *FormService) Currency() currency.Unit {
	return s.currency
}

func (s *FormService) NewForm() orderform.Form {
	return orderform.New(s.currency)
}

// Products lists the selectable products, ordered by name.
func (s *FormService) Products(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListProducts: %w", err)
	}

	return products, nil
}

// Refresh re-reads the unit price of every selected product.
// Prices carried by the incoming form are never trusted.
func (s *FormService) Refresh(ctx context.Context, form orderform.Form) (orderform.Form, error) {
	rows := slices.Clone(form.Rows)
	for i, row := range rows {
		if !row.HasProduct() {
			rows[i].UnitPrice = decimal.Zero
			continue
		}

		price, err := s.unitPrice(ctx, row.ProductID)
		if err != nil {
			return form, err
		}

		rows[i].UnitPrice = price
	}

	return orderform.Form{Currency: s.currency, Rows: rows}, nil
}

// Apply refreshes prices and dispatches cmd. On error the refreshed,
// unchanged form is returned alongside it so callers can render it again.
func (s *FormService) Apply(ctx context.Context, form orderform.Form, cmd orderform.Command) (orderform.Form, error) {
	form, err := s.Refresh(ctx, form)
	if err != nil {
		return form, fmt.Errorf("s.Refresh: %w", err)
	}

	price := decimal.Zero
	if cmd.Op == orderform.OpSetProduct && cmd.ProductID != uuid.Nil {
		price, err = s.unitPrice(ctx, cmd.ProductID)
		if err != nil {
			return form, err
		}
	}

	next, err := form.Apply(cmd, price)
	if err != nil {
		return form, fmt.Errorf("form.Apply: %w", err)
	}

	return next, nil
}

func (s *FormService) unitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, port.ErrProductNotFound) {
		return decimal.Zero, fmt.Errorf("product[%s]: %w", productID, ErrInvalidProduct)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("products.GetProduct: %w", err)
	}

	if product.Price.Currency != s.currency {
		return decimal.Zero, fmt.Errorf("product[%s] is priced in %s, not %s: %w",
			productID, product.Price.Currency, s.currency, ErrInvalidProduct)
	}

	return product.Price.Amount, nil
}
