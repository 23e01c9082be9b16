/*
Package handler provides the HTTP handlers and routing setup for the ragwall gateway.

This file defines the main Router, applying middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers.
Route paths keep the exact casing the SPA calls (/Register included).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"ragwall/internal/pkg/auth/jwt"
	"ragwall/internal/pkg/limiter"
	"ragwall/internal/pkg/logx"
	"ragwall/internal/pkg/resp"
)

const (
	// SearchRate bounds the fan-out route: each /search is a blocking round
	// trip to the RAG backend, so admission control happens here.
	SearchRate  = 1.0
	SearchBurst = 5

	// AuthRate slows credential probing on /login and /Register.
	AuthRate  = 0.5
	AuthBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the gateway.
// It initializes IP-based rate limiters, configures CORS, and applies global
// and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	searchLimiter := limiter.NewIPRateLimiter(rate.Limit(SearchRate), SearchBurst)
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "ragwall",
		}
		resp.RespondJSON(w, r, http.StatusOK, data)
	})

	r.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
	r.With(authLimiter.Middleware).Post("/Register", HandleRegister(deps))

	r.With(searchLimiter.Middleware).Post("/search", HandleSearch(deps))

	r.Post("/user_query", HandleUserQueries(deps))
	r.Post("/query_response", HandleQueryResponse(deps))

	return r
}
