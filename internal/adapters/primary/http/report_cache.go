package http

import (
	"bytes"
	"context"
	"net/http"
)

// ResponseCache stores rendered JSON responses. Implementations treat
// errors as misses; the middleware never fails a request over the cache.
type ResponseCache interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, payload []byte)
}

// cacheRecorder buffers a response so a successful body can be stored.
type cacheRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (rec *cacheRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *cacheRecorder) Write(b []byte) (int, error) {
	rec.body.Write(b)
	return rec.ResponseWriter.Write(b)
}

// CacheReports serves report responses from the cache when present and
// stores fresh 200 responses on the way out. Reports are admin-only and
// computed over shared data, so the URL alone keys the entry.
func CacheReports(cache ResponseCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cache == nil || r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := "reports:" + r.URL.RequestURI()
			if payload := cache.Get(r.Context(), key); payload != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(payload)
				return
			}

			rec := &cacheRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				cache.Set(r.Context(), key, rec.body.Bytes())
			}
		})
	}
}
