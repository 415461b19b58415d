package middleware

import (
	"net/http"

	"github.com/harshitagarwal04/admin-panel-frontend-sub000/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}
