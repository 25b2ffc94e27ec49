// Package middleware holds the HTTP middleware shared by every campmatch
// route: CORS, request logging, body size limits and rate limiting.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler allows browser calls from the quiz frontend origins.
// Each origin must be scheme + host with no trailing slash.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Total-Count", "X-Ratelimit-Remaining"},
		MaxAge:         600,
	})
	return c.Handler
}
