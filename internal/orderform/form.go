// Package orderform holds the state of an order form being filled in: an ordered
// list of item rows, each with a product selection, a unit price and a quantity
// exactly as typed. Every operation returns a new Form and leaves the receiver untouched.
package orderform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	DefaultQuantity = "1"

	// LastRowNotice is shown to the user when removal of the only row is refused.
	LastRowNotice = "An order must have at least one item."
)

var (
	ErrLastRow     = errors.New("order must have at least one item")
	ErrRowNotFound = errors.New("row not found")
)

type Row struct {
	ID uuid.UUID
	// ProductID is uuid.Nil while no product is selected.
	ProductID uuid.UUID
	UnitPrice decimal.Decimal
	Quantity  string
}

func NewRow() Row {
	return Row{
		ID:       uuid.New(),
		Quantity: DefaultQuantity,
	}
}

func (r Row) HasProduct() bool {
	return r.ProductID != uuid.Nil
}

// PriceDisplay is empty until a product is selected.
func (r Row) PriceDisplay(unit currency.Unit) string {
	if !r.HasProduct() {
		return ""
	}

	return domain.Money{Amount: r.UnitPrice, Currency: unit}.String()
}

// Amount is unit price times quantity, zero for rows without a product or quantity.
func (r Row) Amount() decimal.Decimal {
	if !r.HasProduct() || r.Quantity == "" {
		return decimal.Zero
	}

	return r.UnitPrice.Mul(decimal.NewFromInt(int64(ParseQuantity(r.Quantity))))
}

type Form struct {
	Currency currency.Unit
	Rows     []Row
}

// New returns a form with a single blank row.
func New(unit currency.Unit) Form {
	return Form{
		Currency: unit,
		Rows:     []Row{NewRow()},
	}
}

func (f Form) clone() Form {
	return Form{
		Currency: f.Currency,
		Rows:     slices.Clone(f.Rows),
	}
}

func (f Form) indexOf(rowID uuid.UUID) int {
	return slices.IndexFunc(f.Rows, func(r Row) bool {
		return r.ID == rowID
	})
}

func (f Form) Row(rowID uuid.UUID) (Row, bool) {
	i := f.indexOf(rowID)
	if i < 0 {
		return Row{}, false
	}

	return f.Rows[i], true
}

func (f Form) AddRow() (Form, Row) {
	row := NewRow()

	next := f.clone()
	next.Rows = append(next.Rows, row)

	return next, row
}

func (f Form) RemoveRow(rowID uuid.UUID) (Form, error) {
	i := f.indexOf(rowID)
	if i < 0 {
		return f, fmt.Errorf("row[%s]: %w", rowID, ErrRowNotFound)
	}

	if len(f.Rows) <= 1 {
		return f, ErrLastRow
	}

	next := f.clone()
	next.Rows = slices.Delete(next.Rows, i, i+1)

	return next, nil
}

// SetProduct selects a product for a row. uuid.Nil clears the selection.
func (f Form) SetProduct(rowID, productID uuid.UUID, unitPrice decimal.Decimal) (Form, error) {
	i := f.indexOf(rowID)
	if i < 0 {
		return f, fmt.Errorf("row[%s]: %w", rowID, ErrRowNotFound)
	}

	if productID == uuid.Nil {
		unitPrice = decimal.Zero
	}

	next := f.clone()
	next.Rows[i].ProductID = productID
	next.Rows[i].UnitPrice = unitPrice

	return next, nil
}

func (f Form) SetQuantity(rowID uuid.UUID, quantity string) (Form, error) {
	i := f.indexOf(rowID)
	if i < 0 {
		return f, fmt.Errorf("row[%s]: %w", rowID, ErrRowNotFound)
	}

	next := f.clone()
	next.Rows[i].Quantity = quantity

	return next, nil
}

func (f Form) Total() decimal.Decimal {
	total := decimal.Zero
	for _, row := range f.Rows {
		total = total.Add(row.Amount())
	}

	return total
}

// TotalDisplay is the total with two decimals and no currency symbol.
func (f Form) TotalDisplay() string {
	return f.Total().StringFixed(2)
}
