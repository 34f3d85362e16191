package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/service"
)

// APIHandler exposes the order form as JSON commands for API clients.
type APIHandler struct {
	forms  *service.FormService
	orders *service.OrderService
	log    *slog.Logger
}

func NewAPIHandler(forms *service.FormService, orders *service.OrderService, log *slog.Logger) *APIHandler {
	return &APIHandler{
		forms:  forms,
		orders: orders,
		log:    log,
	}
}

type commandRequest struct {
	Form    formPayload    `json:"form"`
	Command commandPayload `json:"command"`
}

type submitRequest struct {
	Form formPayload `json:"form"`
}

// ListProducts handles GET /api/product
func (h *APIHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.forms.Products(r.Context())
	if err != nil {
		h.log.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, newProductViews(products), h.log)
}

// NewForm handles GET /api/orderform
func (h *APIHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, newFormView(h.forms.NewForm(), nil, ""), h.log)
}

// ApplyCommand handles POST /api/orderform/commands
func (h *APIHandler) ApplyCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := ReadJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode command request", "error", err)
		h.writeDecodeError(w, err)
		return
	}

	form, err := req.Form.toForm(h.forms.Currency())
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	cmd, err := req.Command.toCommand()
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	next, err := h.forms.Apply(r.Context(), form, cmd)
	if err != nil {
		// the last row stays: answer with the unchanged form and the notice
		status, message, ok := classify(err)
		if ok && status == http.StatusConflict {
			WriteJSON(w, status, newFormView(next, nil, message), h.log)
			return
		}

		h.writeFormError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newFormView(next, nil, ""), h.log)
}

// SubmitOrder handles POST /api/order
func (h *APIHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := ReadJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		h.writeDecodeError(w, err)
		return
	}

	form, err := req.Form.toForm(h.forms.Currency())
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	order, err := h.orders.Submit(r.Context(), form)
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	h.log.Info("order placed", "order_id", order.ID, "order_number", order.Number, "items_count", len(order.Items))
	WriteJSON(w, http.StatusCreated, newOrderView(order), h.log)
}

// GetOrder handles GET /api/order/{orderId}
func (h *APIHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order ID", h.log)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), orderID)
	if err != nil {
		h.writeFormError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, newOrderView(order), h.log)
}

func (h *APIHandler) writeFormError(w http.ResponseWriter, err error) {
	status, message, ok := classify(err)
	if !ok {
		h.log.Error("request failed", "error", err)
	} else {
		h.log.Info("request rejected", "status", status, "reason", err.Error())
	}

	WriteError(w, status, message, h.log)
}

func (h *APIHandler) writeDecodeError(w http.ResponseWriter, err error) {
	if isBodyTooLarge(err) {
		WriteError(w, http.StatusRequestEntityTooLarge, "Request body too large", h.log)
		return
	}

	WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
}
