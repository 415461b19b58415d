package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/errors"
	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

// writeError relies on backend messages being sanitized at the adapter
// boundary; nothing here re-inspects them.
func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.ValidationError("Invalid request body")
	}
	return nil
}
