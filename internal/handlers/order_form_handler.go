package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"github.com/nikolayk812/orderform-demo/internal/service"
)

// OrderFormHandler serves the server-rendered order form. Each POST carries the
// whole form plus the pressed button, so nothing is stored until the order is placed.
type OrderFormHandler struct {
	forms     *service.FormService
	orders    *service.OrderService
	templates *Templates
	log       *slog.Logger
}

func NewOrderFormHandler(forms *service.FormService, orders *service.OrderService, templates *Templates, log *slog.Logger) *OrderFormHandler {
	return &OrderFormHandler{
		forms:     forms,
		orders:    orders,
		templates: templates,
		log:       log,
	}
}

// NewForm handles GET /orders/new
func (h *OrderFormHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, h.forms.NewForm(), "")
}

// PostForm handles POST /orders/new
func (h *OrderFormHandler) PostForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		h.log.Warn("failed to parse order form", "error", err)
		if isBodyTooLarge(err) {
			http.Error(w, "Order form too large.", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Malformed order form.", http.StatusBadRequest)
		return
	}

	action, rowID, err := parseAction(r.PostForm.Get("action"))
	if err != nil {
		h.log.Warn("invalid order form action", "error", err)
		http.Error(w, "Malformed order form.", http.StatusBadRequest)
		return
	}

	payload, err := formPayloadFromValues(r.PostForm)
	if err != nil {
		h.log.Warn("invalid order form rows", "error", err)
		http.Error(w, "Malformed order form.", http.StatusBadRequest)
		return
	}

	form, err := payload.toForm(h.forms.Currency())
	if err != nil {
		h.log.Warn("invalid order form rows", "error", err)
		http.Error(w, "Malformed order form.", http.StatusBadRequest)
		return
	}

	switch action {
	case actionSubmit:
		h.submit(w, r, form)
		return
	case actionAddRow:
		form, err = h.forms.Apply(r.Context(), form, orderform.Command{Op: orderform.OpAddRow})
	case actionRemoveRow:
		form, err = h.forms.Apply(r.Context(), form, orderform.Command{Op: orderform.OpRemoveRow, RowID: rowID})
	default:
		form, err = h.forms.Refresh(r.Context(), form)
	}

	if err != nil {
		h.renderFormError(w, r, form, err)
		return
	}

	h.renderForm(w, r, http.StatusOK, form, "")
}

func (h *OrderFormHandler) submit(w http.ResponseWriter, r *http.Request, form orderform.Form) {
	order, err := h.orders.Submit(r.Context(), form)
	if err != nil {
		// show the form again with current prices
		if refreshed, refreshErr := h.forms.Refresh(r.Context(), form); refreshErr == nil {
			form = refreshed
		}
		h.renderFormError(w, r, form, err)
		return
	}

	h.log.Info("order placed", "order_id", order.ID, "order_number", order.Number, "items_count", len(order.Items))
	http.Redirect(w, r, fmt.Sprintf("/orders/%s", order.ID), http.StatusSeeOther)
}

// ShowOrder handles GET /orders/{orderId}
func (h *OrderFormHandler) ShowOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		http.Error(w, "Order not found.", http.StatusNotFound)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		status, message, ok := classify(err)
		if !ok {
			h.log.Error("failed to get order", "order_id", orderID, "error", err)
		}
		http.Error(w, message, status)
		return
	}

	h.templates.render(w, http.StatusOK, "order_view", newOrderView(order), h.log)
}

func (h *OrderFormHandler) renderFormError(w http.ResponseWriter, r *http.Request, form orderform.Form, err error) {
	status, message, ok := classify(err)
	if !ok {
		h.log.Error("failed to update order form", "error", err)
		http.Error(w, message, status)
		return
	}

	h.log.Info("order form rejected", "status", status, "reason", err.Error())
	h.renderForm(w, r, status, form, message)
}

func (h *OrderFormHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, form orderform.Form, notice string) {
	products, err := h.forms.Products(r.Context())
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.templates.render(w, status, "order_form", newFormView(form, products, notice), h.log)
}
