package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ Error encoding response", zap.Error(err))
	}
}
