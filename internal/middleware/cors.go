package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS returns a middleware allowing cross-origin requests from the given
// origins. Origins are full scheme+host values with no trailing slash.
// The method and header lists cover everything the API accepts, and
// preflight results may be cached for five minutes.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler
}
