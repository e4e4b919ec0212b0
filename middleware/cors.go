package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"

	"github.com/kayceeDev/altschooltestingBE/config"
)

// OriginPolicy decides which browser origins may call the API.
// AllowAll is an explicit mode; otherwise only literal entries of the list match.
type OriginPolicy struct {
	allowAll bool
	origins  map[string]struct{}
}

func NewOriginPolicy(cfg config.CORSConfig) *OriginPolicy {
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origins[origin] = struct{}{}
	}
	return &OriginPolicy{allowAll: cfg.AllowAll, origins: origins}
}

// Allows reports whether a declared origin passes the policy
func (p *OriginPolicy) Allows(origin string) bool {
	if p.allowAll {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

// CORSMiddleware rejects disallowed origins through the fallback handler and lets
// rs/cors emit the response headers and answer preflight requests for allowed ones.
// Requests without an Origin header are not subject to the policy.
type CORSMiddleware struct {
	policy *OriginPolicy
	cors   *cors.Cors
	errors *ErrorMiddleware
}

func NewCORSMiddleware(policy *OriginPolicy, errorMiddleware *ErrorMiddleware) *CORSMiddleware {
	return &CORSMiddleware{
		policy: policy,
		cors: cors.New(cors.Options{
			AllowOriginFunc: policy.Allows,
			AllowedMethods:  []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE"},
			AllowedHeaders:  []string{"Content-Type", "Authorization"},
		}),
		errors: errorMiddleware,
	}
}

func (m *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	withHeaders := m.cors.Handler(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !m.policy.Allows(origin) {
			m.errors.HandleError(w, r, fmt.Errorf("origin %q not allowed by CORS", origin))
			return
		}
		withHeaders.ServeHTTP(w, r)
	})
}
