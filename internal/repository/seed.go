package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

var defaultCatalog = []struct {
	name  string
	price string
}{
	{"Ballpoint Pen (box of 10)", "4.50"},
	{"Desk Lamp", "24.99"},
	{"Espresso Beans 1kg", "18.75"},
	{"Notebook A5", "2.50"},
	{"Paper Ream A4", "5.00"},
	{"Stapler", "9.99"},
	{"USB-C Cable", "7.25"},
	{"Wireless Mouse", "19.90"},
}

// DefaultProducts returns the starter catalog. Ids are derived from product
// names, so they are stable across restarts.
func DefaultProducts(unit currency.Unit) []domain.Product {
	products := make([]domain.Product, 0, len(defaultCatalog))
	for _, c := range defaultCatalog {
		products = append(products, domain.Product{
			ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("orderform-demo/product/"+c.name)),
			Name: c.name,
			Price: domain.Money{
				Amount:   decimal.RequireFromString(c.price),
				Currency: unit,
			},
		})
	}

	return products
}

// SeedProducts adds products to an empty catalog and reports how many were added.
// A catalog that already has products is left alone.
func SeedProducts(ctx context.Context, repo port.ProductRepository, products []domain.Product) (int, error) {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.ListProducts: %w", err)
	}

	if len(existing) > 0 {
		return 0, nil
	}

	for _, p := range products {
		if err := repo.AddProduct(ctx, p); err != nil {
			return 0, fmt.Errorf("repo.AddProduct[%s]: %w", p.Name, err)
		}
	}

	return len(products), nil
}
