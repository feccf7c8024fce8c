package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"server/internal/domain"
)

const recentDonationsLimit = 10

// brlPrinter localizes donation amounts for the creator page (pt-BR decimal
// comma).
var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

type creatorProfileDTO struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
	// Accepting reports whether the creator can currently receive donations.
	Accepting bool `json:"accepting"`
}

type supporterDTO struct {
	DonorName     string    `json:"donorName"`
	Message       string    `json:"message"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amountDisplay"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatorGet returns the public projection of a creator profile. Email and
// internal payment identifiers stay private.
func (a *App) CreatorGet(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	creator, err := a.Users.GetByUsername(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "creator not found")
			return
		}
		a.Logger.Error().Err(err).Str("slug", slug).Msg("creator lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load creator")
		return
	}

	a.json(w, http.StatusOK, creatorProfileDTO{
		Name:      creator.Name,
		Username:  creator.Username,
		Bio:       creator.Bio,
		Image:     creator.Image,
		Accepting: creator.CanReceiveDonations(),
	})
}

// CreatorDonations lists the creator's most recent settled donations, with
// amounts formatted for display.
func (a *App) CreatorDonations(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	creator, err := a.Users.GetByUsername(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "creator not found")
			return
		}
		a.Logger.Error().Err(err).Str("slug", slug).Msg("creator lookup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load creator")
		return
	}

	donations, err := a.Donations.ListRecentPaid(r.Context(), creator.ID, recentDonationsLimit)
	if err != nil {
		a.Logger.Error().Err(err).Str("creator_id", creator.ID).Msg("list donations failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load donations")
		return
	}

	items := make([]supporterDTO, 0, len(donations))
	for _, d := range donations {
		items = append(items, supporterDTO{
			DonorName:     d.DonorName,
			Message:       d.DonorMessage,
			Amount:        d.AmountInt,
			AmountDisplay: formatBRL(d.AmountInt),
			CreatedAt:     d.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func formatBRL(minorUnits int64) string {
	return brlPrinter.Sprintf("R$ %.2f", float64(minorUnits)/100)
}
