package handlers

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderform-demo/internal/domain"
	"github.com/nikolayk812/orderform-demo/internal/repository"
	"github.com/nikolayk812/orderform-demo/internal/service"
	"github.com/nikolayk812/orderform-demo/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	stapler  = testProduct("Stapler", "9.99")
	paper    = testProduct("Paper Ream A4", "5.00")
	notebook = testProduct("Notebook A5", "2.50")
)

func testProduct(name, price string) domain.Product {
	return domain.Product{
		ID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("handlers-test/"+name)),
		Name: name,
		Price: domain.Money{
			Amount:   decimal.RequireFromString(price),
			Currency: currency.USD,
		},
	}
}

// newTestRouter wires the full HTTP stack over in-memory storage.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	products := repository.NewInMemoryProduct(stapler, paper, notebook)
	orders := repository.NewInMemoryOrder()

	forms, err := service.NewFormService(products, currency.USD)
	require.NoError(t, err)

	orderService, err := service.NewOrderService(forms, products, orders)
	require.NoError(t, err)

	templates, err := ParseTemplates()
	require.NoError(t, err)

	log := logger.NewWithWriter(io.Discard, "error")

	return NewRouter(RouterConfig{
		AllowedOrigins: []string{"https://shop.example"},
		RequestTimeout: 5 * time.Second,
	}, forms, orderService, templates, log)
}
