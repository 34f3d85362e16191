package handlers

import (
	"errors"
	"net/http"

	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"github.com/nikolayk812/orderform-demo/internal/service"
)

const (
	noticeInvalidProduct  = "The selected product is not available."
	noticeMissingProduct  = "Select a product for every item."
	noticeInvalidQuantity = "Quantity must be at least 1."
)

// classify maps a form or order error to a status code and the message shown
// to the user. ok is false for errors that are not the user's fault.
func classify(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, orderform.ErrLastRow):
		return http.StatusConflict, orderform.LastRowNotice, true
	case errors.Is(err, orderform.ErrRowNotFound):
		return http.StatusNotFound, "Item row not found.", true
	case errors.Is(err, orderform.ErrUnknownCommand):
		return http.StatusBadRequest, "Unknown command.", true
	case errors.Is(err, errMalformedForm):
		return http.StatusBadRequest, "Malformed order form.", true
	case errors.Is(err, service.ErrInvalidProduct):
		return http.StatusUnprocessableEntity, noticeInvalidProduct, true
	case errors.Is(err, service.ErrMissingProduct):
		return http.StatusUnprocessableEntity, noticeMissingProduct, true
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity, noticeInvalidQuantity, true
	case errors.Is(err, service.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found.", true
	default:
		return http.StatusInternalServerError, "Internal server error", false
	}
}
