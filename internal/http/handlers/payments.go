package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"server/internal/donation"
	"server/internal/middleware"
)

// PaymentsCreate runs the donation flow and returns the checkout session id
// the client redirects to. Flow failures come back as {"error": message} with
// the user-facing text; internal causes never leave the server.
func (a *App) PaymentsCreate(w http.ResponseWriter, r *http.Request) {
	var in donation.CreateDonationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	in.Country = middleware.CountryFromContext(r.Context())

	res, err := a.Service.CreatePayment(r.Context(), in)
	if err != nil {
		var derr *donation.Error
		if errors.As(err, &derr) {
			a.error(w, statusForDonationError(derr), derr.Code, derr.Message)
			return
		}
		a.Logger.Error().Err(err).Msg("create payment failed")
		a.error(w, http.StatusInternalServerError, donation.ErrPaymentCreation.Code, donation.ErrPaymentCreation.Message)
		return
	}

	a.json(w, http.StatusOK, map[string]string{"sessionId": res.SessionID})
}

// PaymentsConfig exposes the publishable key the browser payment SDK is
// initialized with.
func (a *App) PaymentsConfig(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"publishableKey": a.PublicKey})
}

func statusForDonationError(err *donation.Error) int {
	switch err {
	case donation.ErrCreatorNotFound:
		return http.StatusNotFound
	case donation.ErrAccountNotVerified:
		return http.StatusConflict
	case donation.ErrPaymentCreation:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
