package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nikolayk812/orderform-demo/internal/middleware"
	"github.com/nikolayk812/orderform-demo/internal/service"
)

type RouterConfig struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig, forms *service.FormService, orders *service.OrderService, templates *Templates, log *slog.Logger) http.Handler {
	healthHandler := NewHealthHandler(log)
	pageHandler := NewOrderFormHandler(forms, orders, templates, log)
	apiHandler := NewAPIHandler(forms, orders, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", healthHandler.ServeHTTP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/orders/new", http.StatusFound)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/new", pageHandler.NewForm)
		r.Post("/new", pageHandler.PostForm)
		r.Get("/{orderId}", pageHandler.ShowOrder)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           300,
		}))

		r.Get("/product", apiHandler.ListProducts)

		r.Get("/orderform", apiHandler.NewForm)
		r.Post("/orderform/commands", apiHandler.ApplyCommand)

		r.Post("/order", apiHandler.SubmitOrder)
		r.Get("/order/{orderId}", apiHandler.GetOrder)
	})

	return r
}
