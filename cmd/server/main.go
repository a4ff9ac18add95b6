package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/v2"

	"go-blog-app/internal/auth"
	"go-blog-app/internal/cache"
	"go-blog-app/internal/config"
	"go-blog-app/internal/data"
	"go-blog-app/internal/handler"
	"go-blog-app/internal/logger"
	"go-blog-app/internal/middleware"
	"go-blog-app/internal/policy"
	"go-blog-app/internal/service"
	"go-blog-app/internal/view"
	"go-blog-app/web"
)

func main() {
	// --- Configuration Loading ---
	cfg, err := config.LoadConfig()
	if err != nil {
		// Use fmt.Printf here because the logger is not yet initialized.
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logger Initialization ---
	log := logger.New(cfg.Log, os.Stdout)

	// --- Database Initialization and Migration ---
	log.Info("Applying database migrations...")
	if err := data.ApplyMigrations(cfg.DB.DSN, "migrations"); err != nil {
		log.Fatal(err, "Failed to apply migrations")
	}
	log.Info("Migrations applied successfully.")

	log.Info("Connecting to the database...")
	db, err := data.NewDB(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()
	log.Info("Database connection successful.")

	// --- Session Management Setup ---
	sessionManager := scs.New()
	sessionManager.Store = mysqlstore.New(db.DB)
	sessionManager.Lifetime = time.Duration(cfg.Session.Lifetime) * time.Hour
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.Server.TLS.Enabled

	// --- Authentication and Authorization Setup ---
	log.Info("Initializing authentication and authorization...")
	authenticator, err := auth.NewAuthenticator(&cfg.OIDC)
	if err != nil {
		log.Fatal(err, "Failed to initialize authenticator")
	}
	enforcer, err := auth.NewEnforcer("mysql", cfg.DB.DSN, "auth_model.conf")
	if err != nil {
		log.Fatal(err, "Failed to initialize enforcer")
	}
	auth.SeedDefaultPolicies(enforcer, log)
	log.Info("Auth components initialized and policies seeded.")

	// --- View Template Initialization ---
	log.Info("Initializing view templates...")
	viewService, err := view.New(web.TemplateFS)
	if err != nil {
		log.Fatal(err, "Failed to initialize view templates")
	}
	log.Info("View templates initialized.")

	// --- Render Cache Initialization ---
	log.Info("Initializing SQLite render cache...")
	renderCache, err := cache.New(cfg.Cache)
	if err != nil {
		log.Fatal(err, "Failed to initialize cache")
	}
	defer renderCache.Close()
	log.Info("Cache initialized.")

	// --- Dependency Injection and Handler Initialization ---
	// Initialize the application layers, injecting dependencies from top to bottom.
	postRepository := data.NewSQLPostRepository(db)
	categoryRepository := data.NewCategoryRepository(db)
	locationRepository := data.NewLocationRepository(db)
	commentRepository := data.NewSQLCommentRepository(db)
	userRepository := data.NewSQLUserRepository(db)

	postService := service.NewPostService(
		postRepository,
		categoryRepository,
		locationRepository,
		commentRepository,
		userRepository,
		renderCache,
		policy.SystemClock{},
		cfg.Blog.PageSize,
	)
	commentService := service.NewCommentService(commentRepository, postRepository)
	profileService := service.NewProfileService(userRepository)

	postHandler := handler.NewPostHandler(postService, viewService, log)
	commentHandler := handler.NewCommentHandler(commentService, viewService, log)
	profileHandler := handler.NewProfileHandler(postService, profileService, viewService, log)
	pagesHandler := handler.NewPagesHandler(viewService)
	authHandler := handler.NewAuthHandler(authenticator, sessionManager, enforcer, userRepository)
	seoHandler := handler.NewSeoHandler(postService, cfg.Server.BaseURL)

	authzMiddleware := middleware.Authorizer(enforcer, sessionManager)
	errorMiddleware := middleware.Error(log, viewService)

	// --- Router Setup ---
	router := handler.NewRouter(
		postHandler,
		commentHandler,
		profileHandler,
		pagesHandler,
		authHandler,
		seoHandler,
		authzMiddleware,
		errorMiddleware,
		sessionManager,
	)

	// --- Server Initialization and Graceful Shutdown ---
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if cfg.Server.TLS.Enabled {
			log.Info(fmt.Sprintf("Starting HTTPS server on %s", server.Addr))
			if err := server.ListenAndServeTLS(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTPS server")
			}
		} else {
			log.Info(fmt.Sprintf("Starting HTTP server on %s", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err, "Could not start HTTP server")
			}
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Warn("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err, "Server forced to shutdown")
	}
	log.Info("Server exiting")
}
