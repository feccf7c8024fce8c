package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/donation"
	"server/internal/payments"
)

// App bundles the dependencies shared by the HTTP handlers.
type App struct {
	Logger    zerolog.Logger
	Service   *donation.Service
	Users     domain.UserRepository
	Donations domain.DonationRepository
	Webhooks  payments.WebhookParser
	// PublicKey is the publishable payment key handed to browser clients.
	PublicKey string
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the uniform error body. The message is the user-facing string;
// code is machine-readable.
func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": message, "code": code})
}
