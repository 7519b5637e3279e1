package handlers

import (
	"log/slog"
	"net/http"

	"github.com/information-sharing-networks/pim-catalog/internal/logger"
	"github.com/swaggo/swag"

	// registers the generated OpenAPI document
	_ "github.com/information-sharing-networks/pim-catalog/internal/docs"
)

// HandleOpenAPI serves the OpenAPI (swagger 2.0) document generated from the handler annotations.
//
// regenerate with: swag init -g cmd/pim-server/main.go -o internal/docs --outputTypes go
func HandleOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		logger.ContextRequestLogger(r.Context()).Error("failed to read OpenAPI document",
			slog.String("error", err.Error()),
		)
		http.Error(w, "OpenAPI document not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
