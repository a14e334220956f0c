package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"rankboard/pkg/domainerrors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler emits the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	message := "internal error"
	var de *domainerrors.Error
	if errors.As(err, &de) {
		message = de.Message
	}
	writeJSON(w, domainerrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}
