package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawmarket/api/internal/cache"
	"github.com/pawmarket/api/internal/config"
	"github.com/pawmarket/api/internal/database"
	_ "github.com/pawmarket/api/internal/docs"
	"github.com/pawmarket/api/internal/handler"
	"github.com/pawmarket/api/internal/jobs"
	"github.com/pawmarket/api/internal/metrics"
	"github.com/pawmarket/api/internal/middleware"
	"github.com/pawmarket/api/internal/model"
	"github.com/pawmarket/api/internal/repository"
	"github.com/pawmarket/api/internal/service"
	"github.com/pawmarket/api/pkg/jwt"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	petRepo := repository.NewPetRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	walkRepo := repository.NewWalkRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	financeRepo := repository.NewFinanceRepository(db)

	// Cache for the hot public reads: Redis when configured, in-process map
	// otherwise
	var store cache.Cache
	if cfg.RedisEnabled() {
		store = cache.NewRedisCache(cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB))
		slog.Info("using redis cache", slog.String("addr", cfg.Redis.Addr))
	} else {
		store = cache.NewMemoryCache(time.Minute)
	}
	defer func() { _ = store.Close() }()

	// The commission split is frozen per booking, so the calculator is shared
	// by every component that prices one
	calculator := service.NewCommissionCalculator(cfg.Platform.FeePercent)

	// Initialize services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService: jwtService,
		TokenRepo:  tokenRepo,
	})

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:     userRepo,
		ProfileRepo:  profileRepo,
		TokenService: tokenService,
	})

	petService := service.NewPetService(service.PetServiceConfig{
		PetRepo: petRepo,
	})

	catalogService := service.NewCatalogService(service.CatalogServiceConfig{
		CatalogRepo: catalogRepo,
	})

	availabilityService := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		AvailabilityRepo: availabilityRepo,
		BookingRepo:      bookingRepo,
	})

	bookingService := service.NewBookingService(service.BookingServiceConfig{
		BookingRepo:         bookingRepo,
		PetRepo:             petRepo,
		ProfileRepo:         profileRepo,
		CatalogRepo:         catalogRepo,
		AvailabilityService: availabilityService,
		Calculator:          calculator,
	})

	caregiverService := service.NewCaregiverService(service.CaregiverServiceConfig{
		ProfileRepo:      profileRepo,
		CatalogRepo:      catalogRepo,
		AvailabilityRepo: availabilityRepo,
		ReviewRepo:       reviewRepo,
		Cache:            store,
	})

	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		ReviewRepo:       reviewRepo,
		BookingRepo:      bookingRepo,
		CaregiverService: caregiverService,
	})

	walkService := service.NewWalkService(service.WalkServiceConfig{
		WalkRepo:    walkRepo,
		BookingRepo: bookingRepo,
	})

	financeService := service.NewFinanceService(service.FinanceServiceConfig{
		FinanceRepo: financeRepo,
		Currency:    cfg.Platform.Currency,
		HoldDays:    cfg.Platform.PayoutHoldDays,
	})

	statsService := service.NewStatsService(service.StatsServiceConfig{
		ProfileRepo: profileRepo,
		CatalogRepo: catalogRepo,
		BookingRepo: bookingRepo,
		Cache:       store,
	})

	seederService := service.NewSeederService(db, calculator)
	adminUsersService := service.NewAdminUsersService(userRepo)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   cfg.RateLimit.RequestsPerMinute,
		Window: time.Minute,
		Burst:  cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	metrics.Register()

	// Payout pipeline runs on an interval; admins can also trigger it via
	// POST /api/v1/admin/payouts/process
	payoutProcessor := jobs.NewPayoutProcessor(financeService, cfg.Platform.PayoutInterval)
	payoutProcessor.Start()
	defer payoutProcessor.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	petHandler := handler.NewPetHandler(petService)
	caregiverHandler := handler.NewCaregiverHandler(caregiverService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	walkHandler := handler.NewWalkHandler(walkService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	financeHandler := handler.NewFinanceHandler(financeService)
	statsHandler := handler.NewStatsHandler(statsService)
	adminUsersHandler := handler.NewAdminUsersHandler(adminUsersService)
	adminSeederHandler := handler.NewAdminSeederHandler(seederService)
	adminActionsHandler := handler.NewAdminActionsHandler(financeService, caregiverService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	// Prometheus metrics
	mux.Handle("GET /metrics", promhttp.Handler())

	// OpenAPI document and Swagger UI, unless disabled via DOCS_ENABLED
	if cfg.Server.DocsEnabled {
		mux.HandleFunc("GET /api/schema", func(w http.ResponseWriter, r *http.Request) {
			doc, err := swag.ReadDoc()
			if err != nil {
				model.NewInternalError("schema unavailable").WriteJSON(w)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(doc))
		})
		mux.Handle("GET /api/docs", http.RedirectHandler("/api/docs/index.html", http.StatusMovedPermanently))
		mux.Handle("GET /api/docs/", httpSwagger.Handler(httpSwagger.URL("/api/schema")))
	}

	// Auth endpoints (public)
	mux.HandleFunc("POST /api/v1/auth/register/owner", authHandler.RegisterOwner)
	mux.HandleFunc("POST /api/v1/auth/register/caregiver", authHandler.RegisterCaregiver)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", authHandler.Refresh)

	// Auth endpoints (protected)
	authMW := middleware.Auth(tokenService)
	caregiverMW := func(next http.Handler) http.Handler {
		return authMW(middleware.RequireRole(model.UserRoleCaregiver)(next))
	}
	adminMW := func(next http.Handler) http.Handler {
		return authMW(middleware.RequireAdmin()(next))
	}
	mux.Handle("POST /api/v1/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("POST /api/v1/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("GET /api/v1/me", authMW(http.HandlerFunc(authHandler.Me)))

	// Pet endpoints (ownership enforced by the service layer)
	mux.Handle("GET /api/v1/pets", authMW(http.HandlerFunc(petHandler.List)))
	mux.Handle("POST /api/v1/pets", authMW(http.HandlerFunc(petHandler.Create)))
	mux.Handle("GET /api/v1/pets/{petId}", authMW(http.HandlerFunc(petHandler.Get)))
	mux.Handle("PATCH /api/v1/pets/{petId}", authMW(http.HandlerFunc(petHandler.Update)))
	mux.Handle("DELETE /api/v1/pets/{petId}", authMW(http.HandlerFunc(petHandler.Delete)))

	// Caregiver directory (public)
	mux.HandleFunc("GET /api/v1/caregivers", caregiverHandler.Search)
	mux.HandleFunc("GET /api/v1/caregivers/{caregiverId}", caregiverHandler.Detail)

	// Caregiver self-service
	mux.Handle("GET /api/v1/caregivers/me", caregiverMW(http.HandlerFunc(caregiverHandler.GetMyProfile)))
	mux.Handle("PATCH /api/v1/caregivers/me", caregiverMW(http.HandlerFunc(caregiverHandler.UpdateMyProfile)))
	mux.Handle("GET /api/v1/caregivers/me/services", caregiverMW(http.HandlerFunc(catalogHandler.ListMyOfferings)))
	mux.Handle("POST /api/v1/caregivers/me/services", caregiverMW(http.HandlerFunc(catalogHandler.CreateOffering)))
	mux.Handle("PATCH /api/v1/caregivers/me/services/{serviceId}", caregiverMW(http.HandlerFunc(catalogHandler.UpdateOffering)))
	mux.Handle("DELETE /api/v1/caregivers/me/services/{serviceId}", caregiverMW(http.HandlerFunc(catalogHandler.DeleteOffering)))
	mux.Handle("GET /api/v1/caregivers/me/availability", caregiverMW(http.HandlerFunc(availabilityHandler.ListWindows)))
	mux.Handle("POST /api/v1/caregivers/me/availability", caregiverMW(http.HandlerFunc(availabilityHandler.CreateWindow)))
	mux.Handle("DELETE /api/v1/caregivers/me/availability/{availabilityId}", caregiverMW(http.HandlerFunc(availabilityHandler.DeleteWindow)))
	mux.Handle("GET /api/v1/caregivers/me/time-off", caregiverMW(http.HandlerFunc(availabilityHandler.ListTimeOff)))
	mux.Handle("POST /api/v1/caregivers/me/time-off", caregiverMW(http.HandlerFunc(availabilityHandler.CreateTimeOff)))
	mux.Handle("DELETE /api/v1/caregivers/me/time-off/{timeOffId}", caregiverMW(http.HandlerFunc(availabilityHandler.DeleteTimeOff)))

	// Service catalog (public)
	mux.HandleFunc("GET /api/v1/service-types", catalogHandler.ListServiceTypes)

	// Booking endpoints
	mux.Handle("POST /api/v1/bookings", authMW(http.HandlerFunc(bookingHandler.Create)))
	mux.Handle("GET /api/v1/bookings", authMW(http.HandlerFunc(bookingHandler.List)))
	mux.Handle("GET /api/v1/bookings/{bookingId}", authMW(http.HandlerFunc(bookingHandler.Get)))
	mux.Handle("POST /api/v1/bookings/{bookingId}/accept", authMW(http.HandlerFunc(bookingHandler.Accept)))
	mux.Handle("POST /api/v1/bookings/{bookingId}/reject", authMW(http.HandlerFunc(bookingHandler.Reject)))
	mux.Handle("POST /api/v1/bookings/{bookingId}/cancel", authMW(http.HandlerFunc(bookingHandler.Cancel)))
	mux.Handle("POST /api/v1/bookings/{bookingId}/complete", authMW(http.HandlerFunc(bookingHandler.Complete)))
	mux.Handle("POST /api/v1/bookings/{bookingId}/pay", authMW(http.HandlerFunc(bookingHandler.Pay)))

	// Walk endpoints
	mux.Handle("POST /api/v1/walks", authMW(http.HandlerFunc(walkHandler.Start)))
	mux.Handle("GET /api/v1/walks", authMW(http.HandlerFunc(walkHandler.List)))
	mux.Handle("GET /api/v1/walks/{walkId}", authMW(http.HandlerFunc(walkHandler.Get)))
	mux.Handle("PATCH /api/v1/walks/{walkId}", authMW(http.HandlerFunc(walkHandler.Update)))
	mux.Handle("POST /api/v1/walks/{walkId}/photos", authMW(http.HandlerFunc(walkHandler.AddPhoto)))

	// Review endpoints (reads are public, writes owner-scoped by the service)
	mux.Handle("POST /api/v1/reviews", authMW(http.HandlerFunc(reviewHandler.Create)))
	mux.HandleFunc("GET /api/v1/reviews", reviewHandler.ListByCaregiver)

	// Finance endpoints (caregiver money)
	mux.Handle("GET /api/v1/payouts", caregiverMW(http.HandlerFunc(financeHandler.ListPayouts)))
	mux.Handle("GET /api/v1/finance/summary", caregiverMW(http.HandlerFunc(financeHandler.Summary)))
	mux.Handle("GET /api/v1/finance/transactions", caregiverMW(http.HandlerFunc(financeHandler.Transactions)))

	// Marketplace stats (public, cached)
	mux.HandleFunc("GET /api/v1/stats", statsHandler.Marketplace)

	// Admin endpoints - requires admin role
	mux.Handle("GET /api/v1/admin/users", adminMW(http.HandlerFunc(adminUsersHandler.ListUsers)))
	mux.Handle("GET /api/v1/admin/users/{userId}", adminMW(http.HandlerFunc(adminUsersHandler.GetUser)))
	mux.Handle("PATCH /api/v1/admin/users/{userId}", adminMW(http.HandlerFunc(adminUsersHandler.UpdateUser)))
	mux.Handle("POST /api/v1/admin/service-types", adminMW(http.HandlerFunc(catalogHandler.UpsertServiceType)))
	mux.Handle("POST /api/v1/admin/seed", adminMW(http.HandlerFunc(adminSeederHandler.Seed)))
	mux.Handle("DELETE /api/v1/admin/seed", adminMW(http.HandlerFunc(adminSeederHandler.Cleanup)))
	mux.Handle("POST /api/v1/admin/payouts/process", adminMW(http.HandlerFunc(adminActionsHandler.ProcessPayouts)))
	mux.Handle("GET /api/v1/admin/payouts/export", adminMW(http.HandlerFunc(adminActionsHandler.ExportPayouts)))
	mux.Handle("POST /api/v1/admin/ratings/recalc", adminMW(http.HandlerFunc(adminActionsHandler.RecalcRatings)))

	// Apply global middleware. Metrics sits last so it wraps the mux directly
	// and can read the matched route pattern.
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
		middleware.Compress,
		middleware.Metrics,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
