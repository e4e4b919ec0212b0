package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/kayceeDev/altschooltestingBE/appctx"
	"github.com/kayceeDev/altschooltestingBE/core"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id and logs one line once it completes.
// A well formed X-Request-ID from the caller is kept, anything else is replaced.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if !core.IsValidID(requestID) {
			requestID = core.NewID("req")
		}

		w.Header().Set(RequestIDHeader, requestID)
		recorder := newStatusRecorder(w)
		r = r.WithContext(appctx.SetRequestID(r.Context(), requestID))

		next.ServeHTTP(recorder, r)

		icon := "✅"
		if recorder.status >= http.StatusInternalServerError {
			icon = "❌"
		} else if recorder.status >= http.StatusBadRequest {
			icon = "⚠️"
		}
		log.Printf("%s %s %s -> %d (%s) [%s]",
			icon, r.Method, r.URL.Path, recorder.status, time.Since(start).Round(time.Microsecond), requestID)
	})
}
