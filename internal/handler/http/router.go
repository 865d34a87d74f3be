package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isaac-evs/catalog-service/internal/service"
	"github.com/isaac-evs/catalog-service/pkg/health"
	"github.com/isaac-evs/catalog-service/pkg/httputil"
	"github.com/isaac-evs/catalog-service/pkg/middleware"
)

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	customerService *service.CustomerService,
	addressService *service.AddressService,
	productService *service.ProductService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Welcome and health endpoints
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{
			Data: map[string]string{"message": "Welcome to the Catalog Service API"},
		})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	customerHandler := NewCustomerHandler(customerService, logger)
	addressHandler := NewAddressHandler(addressService, logger)
	productHandler := NewProductHandler(productService, logger)

	r.Route("/customers", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", customerHandler.List)
		r.Post("/", customerHandler.Create)
		r.Get("/{id}", customerHandler.Get)
		r.Put("/{id}", customerHandler.Update)
		r.Delete("/{id}", customerHandler.Delete)
	})

	r.Route("/addresses", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", addressHandler.List)
		r.Post("/", addressHandler.Create)
		r.Get("/customer/{customerId}", addressHandler.ListByCustomer)
		r.Get("/{id}", addressHandler.Get)
		r.Put("/{id}", addressHandler.Update)
		r.Delete("/{id}", addressHandler.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/sku/{sku}", productHandler.GetBySKU)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	return r
}
