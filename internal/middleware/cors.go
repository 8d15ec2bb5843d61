package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"residencia-backend/internal/config"
)

// NewCORS builds the CORS layer for the dashboard SPA. Origins come from
// config; an empty list means same-origin deployments and allows nothing
// extra.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
