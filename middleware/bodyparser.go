package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/kayceeDev/altschooltestingBE/appctx"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

const bodyTooLargeMessage = "request entity too large"

// BodyParser decodes JSON request bodies into a map stored on the request context.
// Non-JSON content types and empty bodies yield an empty object.
type BodyParser struct {
	limit int64
}

func NewBodyParser(limit int64) *BodyParser {
	utils.AssertInvariant(limit > 0, "body limit must be positive")
	return &BodyParser{limit: limit}
}

func (p *BodyParser) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{}

		if r.Body != nil && isJSONContentType(r.Header.Get("Content-Type")) {
			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, p.limit))
			if err != nil {
				var maxBytesErr *http.MaxBytesError
				if errors.As(err, &maxBytesErr) {
					log.Printf("❌ Request body exceeds %d bytes", p.limit)
					utils.WriteJSONResponse(w, http.StatusRequestEntityTooLarge, map[string]string{"message": bodyTooLargeMessage})
					return
				}
				log.Printf("❌ Failed to read request body: %v", err)
				utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			parsed, err := parseJSONBody(raw)
			if err != nil {
				log.Printf("❌ Failed to parse request body: %v", err)
				utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
				return
			}
			body = parsed
		}

		next.ServeHTTP(w, r.WithContext(appctx.SetBody(r.Context(), body)))
	})
}

// parseJSONBody accepts objects and arrays only. Arrays carry no fields and become an empty object.
func parseJSONBody(raw []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}
	if trimmed[0] != '{' && trimmed[0] != '[' {
		return nil, fmt.Errorf("invalid JSON body: expected an object or array, got %q", truncate(string(trimmed), 20))
	}

	var decoded any
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if object, ok := decoded.(map[string]any); ok {
		return object, nil
	}
	return map[string]any{}, nil
}

func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
