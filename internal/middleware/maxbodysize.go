package middleware

import "net/http"

// LimitBody returns a middleware capping request bodies at limit bytes.
// A request that declares a larger Content-Length is refused with 413 up
// front. Bodies without a declared length are wrapped in http.MaxBytesReader,
// so the read inside the downstream handler fails once the cap is crossed.
func LimitBody(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
