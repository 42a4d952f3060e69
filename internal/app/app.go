package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-blog-admin/internal/config"
	"go-blog-admin/internal/database"
	"go-blog-admin/internal/handler"
	"go-blog-admin/internal/middleware"
	"go-blog-admin/internal/router"
	"go-blog-admin/internal/service"
	"go-blog-admin/internal/store"
	"go-blog-admin/internal/store/postgres"
	"go-blog-admin/internal/token"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var cleanup []func()

	var users store.UserDirectory
	var creds store.CredentialStore
	if cfg.DatabaseURL != "" {
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		users = postgres.NewUserDirectory(db.Pool)
		creds = postgres.NewCredentialStore(db.Pool)
		cleanup = append(cleanup, db.Close)
	} else {
		slog.Info("using file-backed stores", "data_dir", cfg.DataDir)
		users = store.NewFileUserDirectory(filepath.Join(cfg.DataDir, "users.json"), cfg.StoreTimeout)
		creds = store.NewFileCredentialStore(filepath.Join(cfg.DataDir, "credentials.json"), cfg.StoreTimeout)
	}

	tokens, err := token.New(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		runAll(cleanup)
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := service.NewAuthService(users, creds, tokens)
	userService := service.NewUserService(users, creds)

	if cfg.UsesDefaultBootstrapPassword() {
		slog.Warn("ADMIN_BOOTSTRAP_PASSWORD not set; the seed admin uses the well-known default password and is insecure until changed")
	}
	if err := userService.Bootstrap(context.Background(), cfg.BootstrapUsername, cfg.BootstrapEmail, cfg.BootstrapPassword); err != nil {
		runAll(cleanup)
		return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth: handler.NewAuthHandler(authService, userService),
		User: handler.NewUserHandler(userService),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server, cleanupFuncs: cleanup}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	runAll(a.cleanupFuncs)

	slog.Info("server stopped")
	return nil
}

func runAll(fns []func()) {
	for _, fn := range fns {
		fn()
	}
}
