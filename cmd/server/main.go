package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanNess-system/Jardin-Infinito/internal/auth"
	"github.com/DanNess-system/Jardin-Infinito/internal/catalog"
	"github.com/DanNess-system/Jardin-Infinito/internal/config"
	"github.com/DanNess-system/Jardin-Infinito/internal/handlers"
	"github.com/DanNess-system/Jardin-Infinito/internal/store"
	"github.com/DanNess-system/Jardin-Infinito/internal/wordpress"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Auth Service + default admin
	authService := auth.NewService(db, logger)
	if err := authService.EnsureDefaultAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("Failed to ensure default admin", "error", err)
		os.Exit(1)
	}

	// 4. WordPress client + catalog loader
	wpClient := wordpress.NewClient(cfg.WPBaseURL, cfg.WPUsername, cfg.WPPassword, logger)
	loader := catalog.NewLoader(wpClient, logger, cfg.MediaConcurrency)

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	authHandler := &handlers.AuthHandler{
		Auth:         authService,
		CookieSecure: cfg.CookieSecure,
	}
	productHandler := &handlers.ProductHandler{
		Store: db,
	}
	catalogHandler := &handlers.CatalogHandler{
		Loader: loader,
	}
	uploadHandler := &handlers.UploadHandler{
		Dir: "static/uploads",
	}
	adminHandler := &handlers.AdminHandler{
		Auth:      authHandler,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate Limiter for login attempts
	rateLimiter := handlers.NewRateLimiter(cfg.LoginRateWindow)

	// Auth
	mux.HandleFunc("POST /api/auth/login", rateLimiter.Middleware(authHandler.Login))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/auth/me", authHandler.Me)

	// Products (reads public, writes behind a session)
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.Get)
	mux.HandleFunc("POST /api/products", authHandler.RequireSession(productHandler.Create))
	mux.HandleFunc("PUT /api/products/{id}", authHandler.RequireSession(productHandler.Update))
	mux.HandleFunc("DELETE /api/products/{id}", authHandler.RequireSession(productHandler.Delete))

	// Catalog + blog, proxied from WordPress
	mux.HandleFunc("GET /api/catalog/{collection}", catalogHandler.Collection)
	mux.HandleFunc("GET /api/blog", catalogHandler.Blog)

	// Image uploads
	mux.HandleFunc("POST /api/uploads", authHandler.RequireSession(uploadHandler.Upload))

	// Admin panel pages
	mux.HandleFunc("GET /login", adminHandler.LoginPage)
	mux.HandleFunc("GET /admin", adminHandler.Panel)

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(mux),
	)

	// Expired sessions are swept hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := authService.CleanExpiredSessions(); err != nil {
				slog.Error("Session cleanup failed", "error", err)
			}
		}
	}()

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
