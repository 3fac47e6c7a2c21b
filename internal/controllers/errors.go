package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"fishdata/internal/models"
)

// writeError renders a domain error as {"detail": "..."} with the
// status its kind maps to.
func writeError(w http.ResponseWriter, derr *models.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(derr.HTTPStatus())
	body, _ := json.Marshal(map[string]string{"detail": derr.Message})
	_, _ = w.Write(body)
}
