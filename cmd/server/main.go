package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Dias221467/Storefront/internal/config"
	"github.com/Dias221467/Storefront/internal/database"
	"github.com/Dias221467/Storefront/internal/handlers"
	"github.com/Dias221467/Storefront/internal/jobs"
	"github.com/Dias221467/Storefront/internal/repository"
	"github.com/Dias221467/Storefront/internal/repository/memory"
	"github.com/Dias221467/Storefront/internal/scheduler"
	"github.com/Dias221467/Storefront/internal/server"
	"github.com/Dias221467/Storefront/internal/services"
	"github.com/Dias221467/Storefront/pkg/logger"
	"github.com/Dias221467/Storefront/pkg/middleware"
	"github.com/Dias221467/Storefront/pkg/shutdown"
	"golang.org/x/sync/errgroup"
)

type cartStore interface {
	services.CartStore
	jobs.StaleCartStore
}

type stores struct {
	users    services.UserStore
	products services.ProductStore
	carts    cartStore
	close    func()
}

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_PRIVATE_KEY must be set")
	}

	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	// The listener is only bound once the database is reachable.
	st, err := openStores(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Database connection error")
	}
	defer st.close()

	// --- Services ---
	userService := services.NewUserService(st.users)
	productService := services.NewProductService(st.products)
	cartService := services.NewCartService(st.carts, st.products)

	// --- Handlers ---
	h := server.Handlers{
		User:    handlers.NewUserHandler(userService, cfg, middleware.NewCookieSigner(cfg.JWTSecret)),
		Product: handlers.NewProductHandler(productService, cfg.AssetsDir),
		Cart:    handlers.NewCartHandler(cartService),
	}

	janitor := jobs.NewCartJanitor(st.carts, cfg.CartTTL)
	cron, err := scheduler.StartCartJanitor(cfg.JanitorSchedule, janitor)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to schedule cart janitor")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Infof("Server started on %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Log.Info("Shutting down")
		<-cron.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
	}
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StorageDriver {
	case "memory":
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		m := memory.New()
		return &stores{users: m, products: m, carts: m, close: func() {}}, nil
	case "mongo", "":
		db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}

		userRepo := repository.NewUserRepository(db)
		cartRepo := repository.NewCartRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			logger.Log.WithError(err).Warn("Could not ensure user indexes")
		}
		if err := cartRepo.EnsureIndexes(ctx); err != nil {
			logger.Log.WithError(err).Warn("Could not ensure cart indexes")
		}

		return &stores{
			users:    userRepo,
			products: repository.NewProductRepository(db),
			carts:    cartRepo,
			close: func() {
				_ = db.Client().Disconnect(context.Background())
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
