package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/commerce-management/internal/auth"
	"github.com/frahmantamala/commerce-management/internal/category"
	"github.com/frahmantamala/commerce-management/internal/order"
	"github.com/frahmantamala/commerce-management/internal/product"
	"github.com/frahmantamala/commerce-management/internal/transport/middleware"
	"github.com/frahmantamala/commerce-management/internal/transport/swagger"
	"github.com/frahmantamala/commerce-management/internal/user"
)

type RouterDeps struct {
	DB              *sql.DB
	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	CategoryHandler *category.Handler
	ProductHandler  *product.Handler
	OrderHandler    *order.Handler
	Logger          *slog.Logger
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

func RegisterAllRoutes(router *chi.Mux, deps RouterDeps) {
	healthHandler := NewHealthHandler(deps.DB)
	roleGate := auth.NewRoleGate(deps.Logger)

	corsOpts := middleware.DefaultCORSOptions()
	if len(deps.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = deps.AllowedOrigins
	}
	router.Use(middleware.CORS(corsOpts))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(deps.Logger))
	router.Use(middleware.LoggingMiddleware(deps.Logger))
	if deps.RateLimitMax > 0 {
		limiter := middleware.NewRateLimiter(deps.RateLimitMax, deps.RateLimitWindow)
		router.Use(limiter.Middleware)
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register", deps.AuthHandler.Register)
			sr.Post("/login", deps.AuthHandler.Login)
			sr.Post("/refresh", deps.AuthHandler.RefreshToken)
		})

		// Catalog reads are public
		r.Get("/categories", deps.CategoryHandler.ListCategories)
		r.Get("/categories/{id}", deps.CategoryHandler.GetCategory)
		r.Get("/products", deps.ProductHandler.ListProducts)
		r.Get("/products/{id}", deps.ProductHandler.GetProduct)

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(deps.AuthHandler.AuthMiddleware)

			pr.Get("/users/me", deps.UserHandler.GetCurrentUser)

			// Catalog writes are admin-only
			pr.Group(func(ar chi.Router) {
				ar.Use(roleGate.RequireAdmin())

				ar.Post("/categories", deps.CategoryHandler.CreateCategory)
				ar.Patch("/categories/{id}", deps.CategoryHandler.UpdateCategory)
				ar.Delete("/categories/{id}", deps.CategoryHandler.DeleteCategory)

				ar.Post("/products", deps.ProductHandler.CreateProduct)
				ar.Patch("/products/{id}", deps.ProductHandler.UpdateProduct)
				ar.Delete("/products/{id}", deps.ProductHandler.DeleteProduct)
			})

			pr.Route("/users", func(ur chi.Router) {
				ur.Group(func(mr chi.Router) {
					mr.Use(roleGate.RequireManagerOrAdmin())
					mr.Get("/", deps.UserHandler.ListUsers)
					mr.Get("/{id}", deps.UserHandler.GetUser)
				})
				ur.Group(func(ar chi.Router) {
					ar.Use(roleGate.RequireAdmin())
					ar.Post("/", deps.UserHandler.CreateUser)
					ar.Patch("/{id}", deps.UserHandler.UpdateUser)
					ar.Delete("/{id}", deps.UserHandler.DeactivateUser)
				})
			})

			pr.Route("/orders", func(or chi.Router) {
				or.Post("/", deps.OrderHandler.CreateOrder)
				or.Get("/", deps.OrderHandler.ListOrders)
				or.Get("/{id}", deps.OrderHandler.GetOrder)

				or.Group(func(ar chi.Router) {
					ar.Use(roleGate.RequireAdmin())
					ar.Patch("/{id}", deps.OrderHandler.UpdateOrder)
					ar.Delete("/{id}", deps.OrderHandler.DeleteOrder)
				})
			})
		})
	})
}
