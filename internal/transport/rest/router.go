package rest

import (
	"log/slog"
	"net/http"

	"armatupc/internal/config"
	"armatupc/internal/transport/middleware"
)

// RouterDeps carries everything the router needs to assemble the HTTP
// surface.
type RouterDeps struct {
	Config  config.Config
	Logger  *slog.Logger
	Limiter *middleware.RateLimiter

	Auth    *AuthHandler
	Catalog *CatalogHandler
	Builder *BuilderHandler
	AI      *AIHandler
	User    *UserHandler
	Admin   *AdminHandler
	Health  *HealthHandler

	// AuthMiddleware resolves bearer tokens into a context identity.
	AuthMiddleware middleware.Middleware
}

// NewRouter builds the full route table with the middleware stack
// applied. The assistant endpoints carry a tighter rate limit than the
// rest of the API.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health probes bypass auth and rate limiting.
	mux.HandleFunc("GET /health", deps.Health.Health)
	mux.HandleFunc("GET /health/live", deps.Health.Live)
	mux.HandleFunc("GET /health/ready", deps.Health.Ready)

	api := http.NewServeMux()

	api.HandleFunc("POST /auth/register", deps.Auth.Register)
	api.HandleFunc("POST /auth/login", deps.Auth.Login)
	api.HandleFunc("POST /auth/refresh", deps.Auth.Refresh)
	api.HandleFunc("POST /auth/logout", deps.Auth.Logout)

	api.HandleFunc("GET /products", deps.Catalog.List)
	api.HandleFunc("GET /products/{slug}", deps.Catalog.Get)
	api.HandleFunc("GET /stores", deps.Catalog.Stores)

	api.HandleFunc("GET /builder/slots", deps.Builder.Slots)
	api.HandleFunc("POST /builder/summary", deps.Builder.Summarize)
	api.HandleFunc("POST /builder/export", deps.Builder.Export)
	api.HandleFunc("POST /builds", deps.Builder.SaveBuild)
	api.HandleFunc("GET /builds", deps.Builder.ListBuilds)
	api.HandleFunc("GET /builds/{id}", deps.Builder.GetBuild)
	api.HandleFunc("DELETE /builds/{id}", deps.Builder.DeleteBuild)
	api.HandleFunc("GET /builds/{id}/export", deps.Builder.ExportBuild)

	api.HandleFunc("GET /me", deps.User.GetProfile)
	api.HandleFunc("PATCH /me", deps.User.UpdateProfile)

	aiLimit := deps.Limiter.Limit(deps.Config.RateLimit.AIRequestsPerMinute)

	aiMux := http.NewServeMux()
	aiMux.HandleFunc("POST /ai/suggest-build", deps.AI.SuggestBuild)
	aiMux.HandleFunc("POST /ai/compatibility", deps.AI.CheckCompatibility)
	api.Handle("POST /ai/", aiLimit(aiMux))

	adminMux := http.NewServeMux()
	adminMux.HandleFunc("POST /admin/products", deps.Admin.CreateProduct)
	adminMux.HandleFunc("PATCH /admin/products/{id}", deps.Admin.UpdateProduct)
	adminMux.HandleFunc("DELETE /admin/products/{id}", deps.Admin.DeleteProduct)
	adminMux.HandleFunc("POST /admin/products/{slug}/prices", deps.Admin.MergePrices)
	adminMux.HandleFunc("GET /admin/users", deps.Admin.ListUsers)
	adminMux.HandleFunc("PUT /admin/users/{id}/role", deps.Admin.SetUserRole)
	adminMux.HandleFunc("PUT /admin/users/{id}/status", deps.Admin.SetUserStatus)

	adminAIMux := http.NewServeMux()
	adminAIMux.HandleFunc("POST /admin/ai/enrich", deps.Admin.EnrichProduct)
	adminAIMux.HandleFunc("POST /admin/ai/prices", deps.Admin.DiscoverPrices)
	adminMux.Handle("POST /admin/ai/", aiLimit(adminAIMux))

	api.Handle("/admin/", middleware.RequireAdmin(adminMux))

	apiChain := middleware.Chain(
		deps.Limiter.Limit(deps.Config.RateLimit.RequestsPerMinute),
		deps.AuthMiddleware,
	)
	mux.Handle("/", apiChain(api))

	outer := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.Config.CORS),
	)
	return outer(mux)
}
