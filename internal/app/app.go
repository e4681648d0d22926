package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"google.golang.org/genai"

	"armatupc/internal/adapter/gemini"
	"armatupc/internal/adapter/postgres"
	buildrepo "armatupc/internal/adapter/postgres/build"
	productrepo "armatupc/internal/adapter/postgres/product"
	tokenrepo "armatupc/internal/adapter/postgres/token"
	userrepo "armatupc/internal/adapter/postgres/user"
	jwtauth "armatupc/internal/auth"
	"armatupc/internal/config"
	aisvc "armatupc/internal/service/ai"
	authsvc "armatupc/internal/service/auth"
	buildersvc "armatupc/internal/service/builder"
	catalogsvc "armatupc/internal/service/catalog"
	usersvc "armatupc/internal/service/user"
	"armatupc/internal/transport/middleware"
	"armatupc/internal/transport/rest"
)

// llmClient is satisfied by both the real Gemini client and the
// disabled stand-in.
type llmClient interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// Run is the application entry point. It loads configuration, wires the
// storage, service and transport layers, starts the HTTP server and
// blocks until the context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	products := productrepo.New(pool)
	builds := buildrepo.New(pool)
	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var llm llmClient
	if cfg.AI.Enabled() {
		client, err := gemini.New(ctx, cfg.AI)
		if err != nil {
			return fmt.Errorf("create gemini client: %w", err)
		}
		defer client.Close() //nolint:errcheck
		llm = client
	} else {
		logger.Warn("AI flows disabled: no API key configured")
		llm = gemini.Disabled{}
	}

	authService := authsvc.NewService(logger, users, tokens, jwtManager, cfg.Auth)
	catalogService := catalogsvc.NewService(logger, products, txManager, cfg.Catalog)
	builderService := buildersvc.NewService(logger, products, builds)
	aiService := aisvc.NewService(logger, llm, products)
	userService := usersvc.NewService(logger, users)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Config:         *cfg,
		Logger:         logger,
		Limiter:        limiter,
		Auth:           rest.NewAuthHandler(authService, logger),
		Catalog:        rest.NewCatalogHandler(catalogService, logger),
		Builder:        rest.NewBuilderHandler(builderService, logger),
		AI:             rest.NewAIHandler(aiService, logger),
		User:           rest.NewUserHandler(userService, logger),
		Admin:          rest.NewAdminHandler(catalogService, aiService, userService, logger),
		Health:         rest.NewHealthHandler(pool, BuildVersion()),
		AuthMiddleware: middleware.Auth(authService),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
