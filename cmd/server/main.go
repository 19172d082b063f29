package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/spinwin/backend/internal/config"
	"github.com/spinwin/backend/internal/handler"
	appMiddleware "github.com/spinwin/backend/internal/middleware"
	"github.com/spinwin/backend/internal/repository"
	"github.com/spinwin/backend/internal/service"
	"github.com/spinwin/backend/internal/ws"
	"github.com/spinwin/backend/pkg/crypto"
)

func main() {
	// Load .env file if present (for local development)
	_ = godotenv.Load()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	ctx := context.Background()

	// Initialize database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database error: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}
	log.Println("✅ Database connected & migrated")

	// Encryptor for payment identifiers at rest
	enc, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ Encryption error: %v", err)
	}

	// Repositories
	accountRepo := repository.NewAccountRepository(db)
	ownerRepo := repository.NewOwnerRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	prizeRepo := repository.NewPrizeRepository(db)
	winnerRepo := repository.NewWinnerRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	claimRepo := repository.NewClaimRepository(db)

	// Services
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.StaffUsername, cfg.StaffEmail, cfg.StaffPassword, accountRepo)
	if err := authSvc.SeedStaff(ctx); err != nil {
		log.Fatalf("❌ Staff seed error: %v", err)
	}

	feedHub := ws.NewFeedHub()
	couponSvc := service.NewCouponService(couponRepo, ownerRepo, prizeRepo, winnerRepo, subRepo, feedHub)
	prizeSvc := service.NewPrizeService(prizeRepo, ownerRepo)
	billingSvc := service.NewBillingService(claimRepo, subRepo, enc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	couponHandler := handler.NewCouponHandler(couponSvc)
	prizeHandler := handler.NewPrizeHandler(prizeSvc)
	paymentHandler := handler.NewPaymentHandler(billingSvc)
	adminHandler := handler.NewAdminHandler(db, billingSvc, couponSvc)
	plansHandler := handler.NewPlansHandler()
	healthHandler := handler.NewHealthHandler(db)
	feedHandler := ws.NewFeedHandler(feedHub, authSvc, ownerRepo)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(appMiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(20, 40)
	r.Use(globalRL.Middleware())

	// Public routes
	r.Get("/health", healthHandler.Check)
	r.Get("/api/plans", plansHandler.List)

	// Brute-forceable public endpoints get the strict limiter
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.StrictRateLimiter())
		r.Post("/api/auth/register", authHandler.Register)
		r.Post("/api/auth/login", authHandler.Login)
		r.Post("/api/redeem", couponHandler.Redeem)
	})

	// Protected API routes
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.Auth(authSvc))

		r.Get("/api/auth/me", authHandler.Me)

		// Coupons
		r.Post("/api/coupons", couponHandler.Issue)
		r.Get("/api/coupons", couponHandler.List)
		r.Delete("/api/coupons", couponHandler.DeleteAll)
		r.Get("/api/coupons/export", couponHandler.Export)
		r.Get("/api/coupons/validate", couponHandler.Validate)
		r.Post("/api/coupons/spin", couponHandler.Spin)

		// Prizes
		r.Get("/api/prizes", prizeHandler.List)
		r.Post("/api/prizes", prizeHandler.Create)
		r.Put("/api/prizes/{id}", prizeHandler.Update)
		r.Delete("/api/prizes/{id}", prizeHandler.Delete)

		// Dashboard & winners
		r.Get("/api/dashboard", couponHandler.Dashboard)
		r.Get("/api/winners", couponHandler.Winners)

		// Payments
		r.Post("/api/payment/claim", paymentHandler.SubmitClaim)
		r.Get("/api/payment/subscription", paymentHandler.GetSubscription)

		// Staff routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.StaffOnly)
			r.Get("/api/admin/stats", adminHandler.GetStats)
			r.Get("/api/admin/claims", adminHandler.ListClaims)
			r.Post("/api/admin/claims/confirm", adminHandler.ConfirmClaimsBulk)
			r.Post("/api/admin/claims/{id}/confirm", adminHandler.ConfirmClaim)
			r.Delete("/api/admin/owners/{accountId}/coupons", adminHandler.DeleteOwnerCoupons)
		})
	})

	// Live redemption feed (auth via query param)
	r.HandleFunc("/api/winners/feed", feedHandler.Handle)

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// WriteTimeout must be 0 for WebSocket connections (they are long-lived)
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("🚀 SpinWin backend listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}
