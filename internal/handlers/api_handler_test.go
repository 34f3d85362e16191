package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/orderform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}

// applyCommand posts one command against the form view and returns the new view.
func applyCommand(t *testing.T, router http.Handler, view formView, cmd commandPayload, wantStatus int) formView {
	t.Helper()

	rows := make([]rowPayload, 0, len(view.Rows))
	for _, r := range view.Rows {
		rows = append(rows, rowPayload{ID: r.ID, ProductID: r.ProductID, Quantity: r.Quantity})
	}

	rec := doJSON(t, router, http.MethodPost, "/api/orderform/commands", commandRequest{
		Form:    formPayload{Rows: rows},
		Command: cmd,
	})
	require.Equal(t, wantStatus, rec.Code, rec.Body.String())

	return decodeBody[formView](t, rec)
}

func TestAPIHandler_ListProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/product", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeBody[[]productView](t, rec)

	want := []productView{
		{ID: notebook.ID.String(), Name: "Notebook A5", Price: "2.50", PriceDisplay: "$2.50", Currency: "USD"},
		{ID: paper.ID.String(), Name: "Paper Ream A4", Price: "5.00", PriceDisplay: "$5.00", Currency: "USD"},
		{ID: stapler.ID.String(), Name: "Stapler", Price: "9.99", PriceDisplay: "$9.99", Currency: "USD"},
	}
	assert.Empty(t, cmp.Diff(want, products))
}

func TestAPIHandler_CommandFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/orderform", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeBody[formView](t, rec)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "0.00", view.Total)
	assert.Equal(t, "USD", view.Currency)
	assert.Equal(t, "1", view.Rows[0].Quantity)
	assert.Empty(t, view.Rows[0].PriceDisplay)
	first := view.Rows[0].ID

	view = applyCommand(t, router, view, commandPayload{Op: "set_product", RowID: first, ProductID: paper.ID.String()}, http.StatusOK)
	assert.Equal(t, "$5.00", view.Rows[0].PriceDisplay)
	assert.Equal(t, "5.00", view.Rows[0].UnitPrice)

	view = applyCommand(t, router, view, commandPayload{Op: "set_quantity", RowID: first, Quantity: "2"}, http.StatusOK)
	assert.Equal(t, "10.00", view.Total)

	view = applyCommand(t, router, view, commandPayload{Op: "add_row"}, http.StatusOK)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "10.00", view.Total)
	assert.Empty(t, view.Rows[1].ProductID)
	assert.Equal(t, "1", view.Rows[1].Quantity)
	assert.Empty(t, view.Rows[1].PriceDisplay)
	second := view.Rows[1].ID

	view = applyCommand(t, router, view, commandPayload{Op: "set_product", RowID: second, ProductID: notebook.ID.String()}, http.StatusOK)
	assert.Equal(t, "12.50", view.Total)

	view = applyCommand(t, router, view, commandPayload{Op: "remove_row", RowID: first}, http.StatusOK)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "2.50", view.Total)

	rejected := applyCommand(t, router, view, commandPayload{Op: "remove_row", RowID: second}, http.StatusConflict)
	assert.Equal(t, orderform.LastRowNotice, rejected.Notice)
	require.Len(t, rejected.Rows, 1)
	assert.Equal(t, second, rejected.Rows[0].ID)
	assert.Equal(t, "2.50", rejected.Total)
}

func TestAPIHandler_ApplyCommandErrors(t *testing.T) {
	router := newTestRouter(t)
	rowID := uuid.NewString()
	form := formPayload{Rows: []rowPayload{{ID: rowID, Quantity: "1"}}}

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid JSON",
			body:       "{",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "unknown op",
			body:       commandRequest{Form: form, Command: commandPayload{Op: "explode"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Unknown command.",
		},
		{
			name:       "empty form",
			body:       commandRequest{Command: commandPayload{Op: "add_row"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Malformed order form.",
		},
		{
			name:       "unknown row",
			body:       commandRequest{Form: form, Command: commandPayload{Op: "set_quantity", RowID: uuid.NewString(), Quantity: "2"}},
			wantStatus: http.StatusNotFound,
			wantError:  "Item row not found.",
		},
		{
			name:       "unknown product",
			body:       commandRequest{Form: form, Command: commandPayload{Op: "set_product", RowID: rowID, ProductID: uuid.NewString()}},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  noticeInvalidProduct,
		},
		{
			name:       "malformed product id",
			body:       commandRequest{Form: form, Command: commandPayload{Op: "set_product", RowID: rowID, ProductID: "x"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "Malformed order form.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/orderform/commands", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			resp := decodeBody[map[string]string](t, rec)
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestAPIHandler_SubmitAndGetOrder(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/order", submitRequest{Form: formPayload{Rows: []rowPayload{
		{ID: uuid.NewString(), ProductID: stapler.ID.String(), Quantity: "3"},
	}}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeBody[orderView](t, rec)
	assert.Equal(t, "29.97", created.Total)
	assert.Equal(t, "PENDING", created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, orderItemView{
		ProductID:   stapler.ID.String(),
		ProductName: "Stapler",
		Quantity:    3,
		UnitPrice:   "9.99",
		LineTotal:   "29.97",
	}, created.Items[0])

	rec = doJSON(t, router, http.MethodGet, "/api/order/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decodeBody[orderView](t, rec)
	assert.Equal(t, created.Number, fetched.Number)
	assert.Equal(t, created.Total, fetched.Total)

	rec = doJSON(t, router, http.MethodGet, "/api/order/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/order/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIHandler_SubmitRejected(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/order", submitRequest{Form: formPayload{Rows: []rowPayload{
		{ID: uuid.NewString(), ProductID: stapler.ID.String(), Quantity: "-1"},
	}}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeBody[map[string]string](t, rec)
	assert.Equal(t, noticeInvalidQuantity, resp["error"])
}

func TestAPIHandler_CORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orderform/commands", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
}

func TestAPIHandler_BodyTooLarge(t *testing.T) {
	router := newTestRouter(t)
	huge := `{"form":{"rows":[{"id":"` + strings.Repeat("a", 2*maxBodyBytes) + `"}]}}`

	for _, path := range []string{"/api/orderform/commands", "/api/order"} {
		t.Run(path, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, path, huge)
			assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		})
	}
}
