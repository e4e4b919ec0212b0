package middleware

import (
	"log"
	"net/http"

	"github.com/kayceeDev/altschooltestingBE/services"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

const unavailableMessage = "Service unavailable"

// ReadinessMiddleware answers 503 until the datastore is ready
type ReadinessMiddleware struct {
	checker services.ReadinessChecker
}

func NewReadinessMiddleware(checker services.ReadinessChecker) *ReadinessMiddleware {
	return &ReadinessMiddleware{checker: checker}
}

func (m *ReadinessMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.checker.IsReady() {
			log.Printf("⚠️ Rejecting %s %s - datastore not ready", r.Method, r.URL.Path)
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, map[string]string{"message": unavailableMessage})
			return
		}
		next.ServeHTTP(w, r)
	})
}
