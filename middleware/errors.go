package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/kayceeDev/altschooltestingBE/appctx"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

// GenericErrorMessage is the only error detail a client ever sees from the fallback handler
const GenericErrorMessage = "Something went wrong!"

// ErrorMiddleware is the process wide fallback for errors that escape route handlers.
// It logs full detail server side and answers with a generic 500.
type ErrorMiddleware struct{}

func NewErrorMiddleware() *ErrorMiddleware {
	return &ErrorMiddleware{}
}

// HTTPMiddleware recovers panics raised further down the chain
func (m *ErrorMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := newStatusRecorder(w)
		defer m.recoverAndRespond(recorder, r)
		next.ServeHTTP(recorder, r)
	})
}

// HandleError logs err and writes the generic 500 response
func (m *ErrorMiddleware) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("❌ Unhandled error for %s %s [%s]: %v", r.Method, r.URL.Path, appctx.GetRequestID(r.Context()), err)
	utils.WriteJSONResponse(w, http.StatusInternalServerError, map[string]string{"message": GenericErrorMessage})
}

func (m *ErrorMiddleware) recoverAndRespond(recorder *statusRecorder, r *http.Request) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}

	err := fmt.Errorf("PANIC - %v\n%s", rec, debug.Stack())
	if recorder.wroteHeader {
		log.Printf("❌ Panic after response was started for %s %s: %v", r.Method, r.URL.Path, err)
		return
	}
	m.HandleError(recorder, r, err)
}

// statusRecorder remembers the status written by downstream handlers
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.wroteHeader {
		return
	}
	s.status = status
	s.wroteHeader = true
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if !s.wroteHeader {
		s.WriteHeader(http.StatusOK)
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
