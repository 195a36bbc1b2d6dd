package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/techstock/inventory/internal/api/types"
)

// fail writes the standard error envelope so middleware rejections look the
// same as handler errors to clients.
func fail(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.Fail(message))
}
