// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"eventbook/internal/config"
	"eventbook/internal/handler"
	"eventbook/internal/i18n"
	"eventbook/internal/logging"
	"eventbook/internal/middleware"
	"eventbook/internal/render"
	"eventbook/internal/session"
	"eventbook/internal/store"
	"eventbook/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List       http.HandlerFunc
	CreateForm http.HandlerFunc
	Create     http.HandlerFunc
	Show       http.HandlerFunc
	EditForm   http.HandlerFunc
	Update     http.HandlerFunc
	DeleteForm http.HandlerFunc
	Delete     http.HandlerFunc
}

// registerCRUD registers the standard CRUD routes for a resource.
// Routes: GET /, GET+POST /create, GET /{id}, GET+PUT /{id}/edit,
// GET+DELETE /{id}/delete.
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixCreate, h.CreateForm)
	r.Post(base+handler.RouteSuffixCreate, h.Create)
	r.Get(base+handler.RouteParamID, h.Show)
	r.Get(base+handler.RouteParamIDEdit, h.EditForm)
	r.Put(base+handler.RouteParamIDEdit, h.Update)
	r.Post(base+handler.RouteParamIDEdit, h.Update) // HTML forms can't send PUT
	r.Get(base+handler.RouteParamIDDelete, h.DeleteForm)
	r.Delete(base+handler.RouteParamIDDelete, h.Delete)
	r.Post(base+handler.RouteParamIDDelete, h.Delete) // HTML forms can't send DELETE
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Event Book - contact and event management\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_DB_PATH          SQLite database path (default: ./data/eventbook.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_SERVER_PORT     Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_DEFAULT_LOCALE   Default UI locale: pl|en (default: pl)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  EVENTBOOK_DO_SEED          Seed demo fixtures on startup (default: false)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("eventbook %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	if err := i18n.SetDefaultLocale(cfg.DefaultLocale); err != nil {
		return fmt.Errorf("setting default locale: %w", err)
	}
	slog.Info("i18n initialized", "locales", i18n.SupportedLocales, "default", cfg.DefaultLocale)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the audit log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewAuditLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	homeHandler := handler.NewHomeHandler(renderer)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	categoryHandler := handler.NewCategoryHandler(db, renderer)
	contactHandler := handler.NewContactHandler(db, renderer)
	eventHandler := handler.NewEventHandler(db, renderer)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())
	r.Use(middleware.CSRF(csrfConfig))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	// Bare root: pick a locale from Accept-Language and redirect
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/"+middleware.DetectLocale(req)+"/", http.StatusFound)
	})

	r.Route("/{locale:[a-z]{2}}", func(r chi.Router) {
		r.Use(middleware.Locale())
		r.Use(middleware.OptionalLoadUser(sessionManager, db))

		r.Get(handler.RouteRoot, homeHandler.Home)

		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteLogout, authHandler.Logout)
		r.Post(handler.RouteLogout, authHandler.Logout)

		// Category listing and detail are public; mutations need a login.
		r.Get(handler.RouteCategories, categoryHandler.List)
		r.Get(handler.RouteCategories+handler.RouteParamID, categoryHandler.Show)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, db))

			r.Get(handler.RouteCategories+handler.RouteSuffixCreate, categoryHandler.CreateForm)
			r.Post(handler.RouteCategories+handler.RouteSuffixCreate, categoryHandler.Create)
			r.Get(handler.RouteCategories+handler.RouteParamIDEdit, categoryHandler.EditForm)
			r.Put(handler.RouteCategories+handler.RouteParamIDEdit, categoryHandler.Update)
			r.Post(handler.RouteCategories+handler.RouteParamIDEdit, categoryHandler.Update)
			r.Get(handler.RouteCategories+handler.RouteParamIDDelete, categoryHandler.DeleteForm)
			r.Delete(handler.RouteCategories+handler.RouteParamIDDelete, categoryHandler.Delete)
			r.Post(handler.RouteCategories+handler.RouteParamIDDelete, categoryHandler.Delete)

			registerCRUD(r, handler.RouteContacts, crudHandlers{
				List:       contactHandler.List,
				CreateForm: contactHandler.CreateForm,
				Create:     contactHandler.Create,
				Show:       contactHandler.Show,
				EditForm:   contactHandler.EditForm,
				Update:     contactHandler.Update,
				DeleteForm: contactHandler.DeleteForm,
				Delete:     contactHandler.Delete,
			})

			registerCRUD(r, handler.RouteEvents, crudHandlers{
				List:       eventHandler.List,
				CreateForm: eventHandler.CreateForm,
				Create:     eventHandler.Create,
				Show:       eventHandler.Show,
				EditForm:   eventHandler.EditForm,
				Update:     eventHandler.Update,
				DeleteForm: eventHandler.DeleteForm,
				Delete:     eventHandler.Delete,
			})
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
