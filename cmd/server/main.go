package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"chandra-dukan-be/internal/address"
	"chandra-dukan-be/internal/cart"
	"chandra-dukan-be/internal/category"
	"chandra-dukan-be/internal/config"
	"chandra-dukan-be/internal/db"
	"chandra-dukan-be/internal/httpx"
	"chandra-dukan-be/internal/janseva"
	"chandra-dukan-be/internal/logger"
	"chandra-dukan-be/internal/metrics"
	"chandra-dukan-be/internal/middleware"
	"chandra-dukan-be/internal/notification"
	"chandra-dukan-be/internal/order"
	"chandra-dukan-be/internal/otp"
	"chandra-dukan-be/internal/payment"
	"chandra-dukan-be/internal/payment/webhook"
	"chandra-dukan-be/internal/product"
	"chandra-dukan-be/internal/returns"
	"chandra-dukan-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// Seams for tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = http.ListenAndServe
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	log.Printf("🚀 Server running at http://localhost:%s/", cfg.AppPort)
	return startServerFunc(":"+cfg.AppPort, router)
}

// newServer wires repositories, services and handlers onto the router.
func newServer(cfg *config.Config, database *sql.DB) chi.Router {
	reg := metrics.NewRegistry()
	notifier := notification.NewLogSender()
	pricing := order.PricingRules{
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		DeliveryCharge:        cfg.DeliveryCharge,
	}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)
	productHandler := product.NewHandler(productSvc)

	categoryRepo := category.NewRepository(database)
	categorySvc := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categorySvc)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, productRepo, notifier, pricing)
	orderHandler := order.NewHandler(orderSvc)

	verifier := payment.NewVerifier(cfg.RazorpaySecretKey)
	paymentRepo := payment.NewRepository(database)
	paymentSvc := payment.NewService(paymentRepo, orderRepo, verifier)
	paymentHandler := payment.NewHandler(paymentSvc)
	webhookHandler := webhook.NewHandler(paymentRepo, orderRepo, verifier)

	returnsRepo := returns.NewRepository(database)
	returnsSvc := returns.NewService(returnsRepo, orderRepo)
	returnsHandler := returns.NewHandler(returnsSvc)

	otpStore := otp.NewStore(5 * time.Minute)
	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, otpStore, notifier)
	userHandler := user.NewHandler(userSvc)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo, pricing)
	cartHandler := cart.NewHandler(cartSvc)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)
	addressHandler := address.NewHandler(addressSvc)

	jansevaRepo := janseva.NewRepository(database)
	jansevaSvc := janseva.NewService(jansevaRepo)
	jansevaHandler := janseva.NewHandler(jansevaSvc)

	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Metrics(reg))
	r.Use(middleware.AuthMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Route("/products", productHandler.Routes)
		r.Route("/categories", categoryHandler.Routes)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/track/{orderNumber}", orderHandler.Track)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				orderHandler.Routes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				orderHandler.AdminRoutes(r)
			})
		})
		r.Route("/auth", func(r chi.Router) {
			userHandler.Routes(r)
			r.With(middleware.RequireAuth).Get("/me", userHandler.Me)
		})
		r.Route("/payments", func(r chi.Router) {
			r.Post("/webhook", webhookHandler.ServeHTTP)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				paymentHandler.Routes(r)
			})
		})

		r.Route("/janseva", func(r chi.Router) {
			jansevaHandler.PublicRoutes(r)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				jansevaHandler.Routes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				jansevaHandler.AdminRoutes(r)
			})
		})

		r.Route("/returns", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				returnsHandler.Routes(r)
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				returnsHandler.AdminRoutes(r)
			})
		})

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/cart", cartHandler.Routes)
			r.Route("/addresses", addressHandler.Routes)
		})

		// Admin
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/admin", func(r chi.Router) {
				r.Route("/products", productHandler.AdminRoutes)
				r.Route("/categories", categoryHandler.AdminRoutes)
				r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
					httpx.OK(w, reg.Snapshot())
				})
			})
		})
	})

	return r
}
