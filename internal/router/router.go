package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sabor-pdv/api/internal/config"
	"github.com/sabor-pdv/api/internal/database"
	"github.com/sabor-pdv/api/internal/handler"
	mw "github.com/sabor-pdv/api/internal/middleware"
	"github.com/sabor-pdv/api/internal/service"
	"github.com/sabor-pdv/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication, store scoping, and role-based middleware as needed.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // PDV dev server
			"https://pdv.saborcaseiro.com.br",
			"https://entregas.saborcaseiro.com.br",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/stores/{sid}/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Admin-only routes (not store-scoped)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole("ADMIN"))
			reportsHandler := handler.NewReportsHandler(queries, cfg.Timezone)
			r.Route("/reports", reportsHandler.RegisterAdminRoutes)
		})

		// Store-scoped routes
		r.Route("/stores/{sid}", func(r chi.Router) {
			r.Use(mw.RequireStore)

			// Users
			userHandler := handler.NewUserHandler(queries)
			r.Route("/users", userHandler.RegisterRoutes)

			// Categories
			categoryHandler := handler.NewCategoryHandler(queries)
			r.Route("/categories", categoryHandler.RegisterRoutes)

			// Products
			productHandler := handler.NewProductHandler(queries)
			r.Route("/products", productHandler.RegisterRoutes)

			// Cash registers
			registerService := service.NewRegisterService(pool, func(db database.DBTX) service.RegisterStore {
				return database.New(db)
			})
			registerHandler := handler.NewRegisterHandler(registerService, queries)
			r.Route("/registers", registerHandler.RegisterRoutes)

			// PDV sales
			saleService := service.NewSaleService(pool, func(db database.DBTX) service.SaleStore {
				return database.New(db)
			})
			saleHandler := handler.NewSaleHandler(saleService, queries, cfg.Timezone)
			r.Route("/sales", saleHandler.RegisterRoutes)

			// Delivery orders
			deliveryService := service.NewDeliveryService(pool, func(db database.DBTX) service.DeliveryStore {
				return database.New(db)
			})
			orderHandler := handler.NewOrderHandler(deliveryService, queries, hub, cfg.Timezone)
			r.Route("/orders", orderHandler.RegisterRoutes)

			// Reports (store-scoped)
			reportsHandler := handler.NewReportsHandler(queries, cfg.Timezone)
			r.Route("/reports", reportsHandler.RegisterRoutes)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
