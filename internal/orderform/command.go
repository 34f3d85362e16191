package orderform

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Op string

const (
	OpAddRow      Op = "add_row"
	OpRemoveRow   Op = "remove_row"
	OpSetProduct  Op = "set_product"
	OpSetQuantity Op = "set_quantity"
)

var ErrUnknownCommand = errors.New("unknown command")

func ParseOp(s string) (Op, error) {
	switch op := Op(s); op {
	case OpAddRow, OpRemoveRow, OpSetProduct, OpSetQuantity:
		return op, nil
	default:
		return "", fmt.Errorf("op[%s]: %w", s, ErrUnknownCommand)
	}
}

// Command is a single user interaction with the form.
// RowID is ignored by add_row, ProductID is read by set_product only
// and Quantity by set_quantity only.
type Command struct {
	Op        Op
	RowID     uuid.UUID
	ProductID uuid.UUID
	Quantity  string
}

// Apply dispatches cmd against f. unitPrice is the price of cmd.ProductID
// and is only read for set_product.
func (f Form) Apply(cmd Command, unitPrice decimal.Decimal) (Form, error) {
	switch cmd.Op {
	case OpAddRow:
		next, _ := f.AddRow()
		return next, nil
	case OpRemoveRow:
		return f.RemoveRow(cmd.RowID)
	case OpSetProduct:
		return f.SetProduct(cmd.RowID, cmd.ProductID, unitPrice)
	case OpSetQuantity:
		return f.SetQuantity(cmd.RowID, cmd.Quantity)
	default:
		return f, fmt.Errorf("op[%s]: %w", cmd.Op, ErrUnknownCommand)
	}
}
