package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type Response struct {
	Status  string `json:"status" example:"online"`
	Message string `json:"message" example:"API is working correctly"`
}

// NewHandler godoc
//
//	@Summary		Health check endpoint
//	@Description	Check if the API is running and its user store is reachable
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	Response	"API is healthy"
//	@Failure		503	{object}	Response	"User store unreachable"
//	@Router			/health [get]
func NewHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		status := http.StatusOK
		response := Response{Status: "online", Message: "API is working correctly"}
		if err := store.Ping(ctx); err != nil {
			status = http.StatusServiceUnavailable
			response = Response{Status: "degraded", Message: "user store unreachable: " + err.Error()}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			http.Error(w, "Error on encoding response", http.StatusInternalServerError)
		}
	}
}
