package middleware

import (
	"net/http"
	"strings"
)

var corsAllowedHeaders = strings.Join([]string{"Content-Type", "Authorization", RequestIDHeader}, ", ")

// CORSMiddleware answers preflight requests and tags responses for browser
// clients. With no configured origins, or with "*", any origin is allowed.
type CORSMiddleware struct {
	allowAll bool
	origins  map[string]bool
}

func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	m := &CORSMiddleware{origins: make(map[string]bool, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			m.allowAll = true
		}
		m.origins[origin] = true
	}
	if len(m.origins) == 0 {
		m.allowAll = true
	}
	return m
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		switch {
		case m.allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case m.origins[origin]:
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", corsAllowedHeaders)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
