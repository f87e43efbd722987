package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/config"
	"github.com/georgemunganga/vendora-backend/internal/modules/availability"
	"github.com/georgemunganga/vendora-backend/internal/modules/booking"
	"github.com/georgemunganga/vendora-backend/internal/modules/coupon"
	"github.com/georgemunganga/vendora-backend/internal/modules/emi"
	"github.com/georgemunganga/vendora-backend/internal/modules/franchise"
	"github.com/georgemunganga/vendora-backend/internal/modules/inventory"
	"github.com/georgemunganga/vendora-backend/internal/modules/location"
	"github.com/georgemunganga/vendora-backend/internal/modules/milestone"
	"github.com/georgemunganga/vendora-backend/internal/modules/reseller"
	"github.com/georgemunganga/vendora-backend/internal/modules/reward"
	"github.com/georgemunganga/vendora-backend/internal/modules/salesrep"
	"github.com/georgemunganga/vendora-backend/internal/modules/user"
	"github.com/georgemunganga/vendora-backend/internal/modules/vendor"
	"github.com/georgemunganga/vendora-backend/internal/platform/cache"
	"github.com/georgemunganga/vendora-backend/internal/platform/events"
	"github.com/georgemunganga/vendora-backend/internal/platform/logger"
	"github.com/georgemunganga/vendora-backend/internal/platform/metrics"
	"github.com/georgemunganga/vendora-backend/internal/platform/migrations"
	"github.com/georgemunganga/vendora-backend/internal/platform/ratelimit"
	"github.com/georgemunganga/vendora-backend/internal/platform/scheduler"
	"github.com/georgemunganga/vendora-backend/internal/platform/store"
	"github.com/georgemunganga/vendora-backend/internal/platform/web"
	"github.com/georgemunganga/vendora-backend/internal/seed"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default .env when present)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.LogLevel())
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync() //nolint:errcheck

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	var repos *repositories
	switch cfg.Driver() {
	case config.DriverPostgres:
		db, err := store.OpenPostgres(ctx, cfg.Database.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := migrations.Apply(ctx, db); err != nil {
			return err
		}
		repos = postgresRepositories(db)
	default:
		client, err := store.ConnectMongo(ctx, cfg.MongoURI())
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background()) //nolint:errcheck
		if repos, err = mongoRepositories(ctx, client.Database(cfg.MongoDatabase())); err != nil {
			return err
		}
	}
	zl.Info("storage ready", zap.String("driver", cfg.Driver()))

	// ── Redis (optional) ────────────────────────────────────
	geoCache := cache.Nop()
	var publisher events.Publisher = events.NewLogPublisher(zl)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.RedisDB(),
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Warn("redis unavailable, running without cache and events", zap.Error(err))
		} else {
			geoCache = cache.NewRedis(rdb, "vendora:")
			publisher = events.NewRedisPublisher(rdb, cfg.EventsChannel())
		}
	}

	// ── Services ────────────────────────────────────────────
	userService := user.NewService(repos.users)
	salesRepService := salesrep.NewService(repos.salesReps)
	franchiseService := franchise.NewService(repos.franchises)
	vendorService := vendor.NewService(repos.vendors, salesRepService, franchiseService, zl)
	couponService := coupon.NewService(repos.coupons)
	availabilityService := availability.NewService(repos.availability)
	bookingService := booking.NewService(repos.bookings, availabilityService, publisher, zl)
	inventoryService := inventory.NewService(repos.inventory, publisher, zl)
	resellerService := reseller.NewService(repos.resellers)
	rewardService := reward.NewService(repos.rewards, publisher, zl)
	milestoneService := milestone.NewService(repos.milestones, rewardService)
	emiService := emi.NewService(repos.emi, zl)

	limiter := ratelimit.New(cfg.RateLimitRPS(), cfg.RateLimitBurst())
	geocoder := location.NewNominatim(location.NominatimConfig{
		BaseURL:   cfg.GeocoderBaseURL(),
		UserAgent: cfg.GeocoderUserAgent(),
		Timeout:   cfg.GeocoderTimeout(),
	})
	locationService := location.NewService(geocoder, geoCache, cfg.GeocoderCacheTTL(), zl)

	if cfg.App.SeedFile != "" {
		f, err := seed.Load(cfg.App.SeedFile)
		if err != nil {
			return err
		}
		if _, err := seed.Apply(ctx, f, milestoneService, couponService, zl); err != nil {
			return err
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(logger.Middleware(zl))
	router.Use(metrics.InstrumentHandler)
	router.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok", "driver": cfg.Driver()})
	})
	router.Handle("/metrics", metrics.Handler())

	// ── Accounts & network ──────────────────────────────────
	user.NewHandler(userService).RegisterRoutes(router)
	salesrep.NewHandler(salesRepService).RegisterRoutes(router)
	franchise.NewHandler(franchiseService).RegisterRoutes(router)
	vendor.NewHandler(vendorService).RegisterRoutes(router)
	reseller.NewHandler(resellerService).RegisterRoutes(router)

	// ── Commerce ────────────────────────────────────────────
	coupon.NewHandler(couponService).RegisterRoutes(router)
	availability.NewHandler(availabilityService).RegisterRoutes(router)
	booking.NewHandler(bookingService).RegisterRoutes(router)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)
	emi.NewHandler(emiService).RegisterRoutes(router)
	location.NewHandler(locationService, limiter).RegisterRoutes(router)

	// ── Rewards ─────────────────────────────────────────────
	for _, kind := range milestone.Kinds {
		milestone.NewHandler(milestoneService, kind).RegisterRoutes(router)
	}
	reward.NewHandler(rewardService).RegisterRoutes(router)

	// ── Scheduled jobs ──────────────────────────────────────
	sched := scheduler.New(zl, 2*time.Minute)
	if cfg.SchedulerEnabled() {
		jobs := []struct {
			name, spec string
			job        scheduler.Job
		}{
			{"coupon_expiry", cfg.CouponSweepSpec(), func(ctx context.Context) error {
				n, err := couponService.DeactivateExpired(ctx)
				if n > 0 {
					zl.Info("coupons deactivated", zap.Int64("count", n))
				}
				return err
			}},
			{"emi_overdue", cfg.EMISweepSpec(), func(ctx context.Context) error {
				_, err := emiService.Sweep(ctx)
				return err
			}},
			{"low_stock_report", cfg.StockReportSpec(), func(ctx context.Context) error {
				lines, err := inventoryService.LowStockReport(ctx)
				if err != nil {
					return err
				}
				for _, l := range lines {
					zl.Warn("low stock", zap.String("inventory_id", l.ID), zap.String("sku", l.SKU),
						zap.Int("quantity", l.CurrentQuantity), zap.Int("reorder_level", l.ReorderLevel))
				}
				return nil
			}},
			{"limiter_prune", cfg.LimiterPruneSpec(), func(context.Context) error {
				limiter.Prune(30 * time.Minute)
				return nil
			}},
		}
		for _, j := range jobs {
			if err := sched.Add(j.name, j.spec, j.job); err != nil {
				return err
			}
		}
		sched.Start()
	}

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Vendora API server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	return srv.Shutdown(shutdownCtx)
}
