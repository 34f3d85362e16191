package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"golang.org/x/text/currency"
)

var errMalformedForm = errors.New("malformed form")

// formPayload is the JSON shape of a form sent by API clients.
// Unit prices are not part of it: they always come from the catalog.
type formPayload struct {
	Rows []rowPayload `json:"rows"`
}

type rowPayload struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

type commandPayload struct {
	Op        string `json:"op"`
	RowID     string `json:"rowId"`
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

func (p formPayload) toForm(unit currency.Unit) (orderform.Form, error) {
	if len(p.Rows) == 0 {
		return orderform.Form{}, fmt.Errorf("form has no rows: %w", errMalformedForm)
	}

	form := orderform.Form{
		Currency: unit,
		Rows:     make([]orderform.Row, 0, len(p.Rows)),
	}

	seen := make(map[uuid.UUID]bool, len(p.Rows))
	for i, rp := range p.Rows {
		rowID, err := uuid.Parse(rp.ID)
		if err != nil {
			return orderform.Form{}, fmt.Errorf("row[%d] id[%s]: %w", i, rp.ID, errMalformedForm)
		}
		if seen[rowID] {
			return orderform.Form{}, fmt.Errorf("row[%d] id[%s] is duplicated: %w", i, rp.ID, errMalformedForm)
		}
		seen[rowID] = true

		productID, err := parseOptionalUUID(rp.ProductID)
		if err != nil {
			return orderform.Form{}, fmt.Errorf("row[%d] productId[%s]: %w", i, rp.ProductID, errMalformedForm)
		}

		form.Rows = append(form.Rows, orderform.Row{
			ID:        rowID,
			ProductID: productID,
			Quantity:  rp.Quantity,
		})
	}

	return form, nil
}

func (p commandPayload) toCommand() (orderform.Command, error) {
	op, err := orderform.ParseOp(p.Op)
	if err != nil {
		return orderform.Command{}, err
	}

	cmd := orderform.Command{Op: op, Quantity: p.Quantity}

	if op != orderform.OpAddRow {
		cmd.RowID, err = uuid.Parse(p.RowID)
		if err != nil {
			return orderform.Command{}, fmt.Errorf("rowId[%s]: %w", p.RowID, errMalformedForm)
		}
	}

	cmd.ProductID, err = parseOptionalUUID(p.ProductID)
	if err != nil {
		return orderform.Command{}, fmt.Errorf("productId[%s]: %w", p.ProductID, errMalformedForm)
	}

	return cmd, nil
}

// formPayloadFromValues reads the parallel row_id, product_id and quantity
// fields posted by the HTML form.
func formPayloadFromValues(values url.Values) (formPayload, error) {
	ids := values["row_id"]
	products := values["product_id"]
	quantities := values["quantity"]

	if len(products) != len(ids) || len(quantities) != len(ids) {
		return formPayload{}, fmt.Errorf("got %d row ids, %d products and %d quantities: %w",
			len(ids), len(products), len(quantities), errMalformedForm)
	}

	payload := formPayload{Rows: make([]rowPayload, 0, len(ids))}
	for i := range ids {
		payload.Rows = append(payload.Rows, rowPayload{
			ID:        ids[i],
			ProductID: strings.TrimSpace(products[i]),
			Quantity:  quantities[i],
		})
	}

	return payload, nil
}

const (
	actionAddRow      = "add_row"
	actionRecalculate = "recalculate"
	actionRemoveRow   = "remove_row"
	actionSubmit      = "submit"
)

// parseAction splits a submit button value such as "remove_row:<row id>".
func parseAction(value string) (string, uuid.UUID, error) {
	name, arg, _ := strings.Cut(value, ":")

	switch name {
	case actionAddRow, actionRecalculate, actionSubmit, "":
		return name, uuid.Nil, nil
	case actionRemoveRow:
		rowID, err := uuid.Parse(arg)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("action[%s]: %w", value, errMalformedForm)
		}
		return name, rowID, nil
	default:
		return "", uuid.Nil, fmt.Errorf("action[%s]: %w", value, errMalformedForm)
	}
}
