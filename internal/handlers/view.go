package handlers

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
)

// formView is what both the HTML page and the JSON API show for a form.
// Amounts are preformatted strings.
type formView struct {
	Currency string    `json:"currency"`
	Rows     []rowView `json:"rows"`
	Total    string    `json:"total"`
	Notice   string    `json:"notice,omitempty"`

	Products []productView `json:"-"`
}

type rowView struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	Quantity     string `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	PriceDisplay string `json:"priceDisplay"`
}

type productView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	PriceDisplay string `json:"priceDisplay"`
	Currency     string `json:"currency"`
}

type orderView struct {
	ID        string          `json:"id"`
	Number    string          `json:"number"`
	Status    string          `json:"status"`
	Currency  string          `json:"currency"`
	Items     []orderItemView `json:"items"`
	Total     string          `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

type orderItemView struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	LineTotal   string `json:"lineTotal"`
}

func newFormView(form orderform.Form, products []domain.Product, notice string) formView {
	rows := make([]rowView, 0, len(form.Rows))
	for _, row := range form.Rows {
		rv := rowView{
			ID:           row.ID.String(),
			Quantity:     row.Quantity,
			PriceDisplay: row.PriceDisplay(form.Currency),
		}
		if row.HasProduct() {
			rv.ProductID = row.ProductID.String()
			rv.UnitPrice = row.UnitPrice.StringFixed(2)
		}
		rows = append(rows, rv)
	}

	return formView{
		Currency: form.Currency.String(),
		Rows:     rows,
		Total:    form.TotalDisplay(),
		Notice:   notice,
		Products: newProductViews(products),
	}
}

func newProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			ID:           p.ID.String(),
			Name:         p.Name,
			Price:        p.Price.Amount.StringFixed(2),
			PriceDisplay: p.Price.String(),
			Currency:     p.Price.Currency.String(),
		})
	}

	return views
}

func newOrderView(order domain.Order) orderView {
	items := make([]orderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemView{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			LineTotal:   item.LineTotal().StringFixed(2),
		})
	}

	return orderView{
		ID:        order.ID.String(),
		Number:    order.Number,
		Status:    string(order.Status),
		Currency:  order.Currency.String(),
		Items:     items,
		Total:     order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	}
}

// parseOptionalUUID treats an empty string as uuid.Nil.
func parseOptionalUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}

	return uuid.Parse(s)
}
