package handlers

import (
	"io"
	"net/http"
)

const maxWebhookBody = 64 * 1024

// WebhookStripe receives signed provider notifications and settles the
// referenced donation. Returning 5xx makes the provider redeliver, so only
// settlement failures do that; malformed or unsigned payloads get a 400.
func (a *App) WebhookStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unreadable payload")
		return
	}

	ev, err := a.Webhooks.Parse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		a.Logger.Warn().Err(err).Msg("webhook rejected")
		a.error(w, http.StatusBadRequest, "bad_request", "invalid signature")
		return
	}
	if ev == nil {
		// Event type we do not track.
		a.json(w, http.StatusOK, map[string]bool{"received": true})
		return
	}

	if err := a.Service.SettleCheckout(r.Context(), *ev); err != nil {
		a.Logger.Error().Err(err).Str("session_id", ev.SessionID).Msg("webhook settlement failed")
		a.error(w, http.StatusInternalServerError, "internal", "settlement failed")
		return
	}

	a.json(w, http.StatusOK, map[string]bool{"received": true})
}
