package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/payments"
)

// Service orchestrates the donation flow: validate, look up the creator,
// check the connected account, persist the donation, open the checkout.
type Service struct {
	users       domain.UserRepository
	donations   domain.DonationRepository
	provider    payments.Provider
	hostBaseURL string
	logger      zerolog.Logger
}

// NewService wires the donation orchestrator.
func NewService(users domain.UserRepository, donations domain.DonationRepository, provider payments.Provider, hostBaseURL string, logger zerolog.Logger) *Service {
	return &Service{
		users:       users,
		donations:   donations,
		provider:    provider,
		hostBaseURL: hostBaseURL,
		logger:      logger,
	}
}

// Result is the successful outcome of CreatePayment: the checkout session the
// client redirects to.
type Result struct {
	SessionID string
}

// ApplicationFee returns the platform's cut of a gross donation amount: 10%,
// floored to whole minor units.
func ApplicationFee(amount int64) int64 {
	return amount * 10 / 100
}

// CreatePayment runs the donation flow end to end. Failures come back as
// *Error values carrying the user-facing message; causes are logged here and
// never cross the boundary.
func (s *Service) CreatePayment(ctx context.Context, in CreateDonationInput) (*Result, error) {
	if verr := ValidateInput(in); verr != nil {
		return nil, verr
	}

	creator, err := s.users.GetByStripeAccountID(ctx, in.CreatorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		s.logger.Error().Err(err).Msg("donation: creator lookup failed")
		return nil, ErrPaymentCreation
	}

	acct, err := s.provider.RetrieveAccount(ctx, *creator.StripeAccountID)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", *creator.StripeAccountID).Msg("donation: account retrieval failed")
		return nil, ErrPaymentCreation
	}
	// The capability can flip between this check and the session request;
	// the donor simply retries in that window.
	if !acct.TransfersActive {
		return nil, ErrAccountNotVerified
	}

	fee := ApplicationFee(in.Price)

	d := &domain.Donation{
		ID:           uuid.NewString(),
		UserID:       creator.ID,
		DonorName:    in.Name,
		DonorMessage: in.Message,
		DonorCountry: in.Country,
		AmountInt:    in.Price,
		Status:       domain.DonationStatusPending,
	}
	if err := s.donations.Create(ctx, d); err != nil {
		s.logger.Error().Err(err).Msg("donation: persist failed")
		return nil, ErrPaymentCreation
	}

	profileURL := fmt.Sprintf("%s/creator/%s", s.hostBaseURL, in.Slug)
	sess, err := s.provider.CreateCheckoutSession(ctx, payments.CheckoutParams{
		SuccessURL:       profileURL + "?success=true",
		CancelURL:        profileURL + "?canceled=true",
		CreatorName:      displayName(creator),
		CreatorID:        creator.ID,
		CreatorAccountID: *creator.StripeAccountID,
		DonationID:       d.ID,
		DonorName:        in.Name,
		DonorMessage:     in.Message,
		AmountInt:        in.Price,
		ApplicationFee:   fee,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("donation_id", d.ID).Msg("donation: checkout session failed")
		if _, markErr := s.donations.UpdateStatus(ctx, d.ID, domain.DonationStatusPending, domain.DonationStatusFailed); markErr != nil {
			s.logger.Error().Err(markErr).Str("donation_id", d.ID).Msg("donation: mark failed did not apply")
		}
		return nil, ErrPaymentCreation
	}

	if err := s.donations.SetCheckoutSession(ctx, d.ID, sess.ID); err != nil {
		// Best effort: the session metadata still references the donation, so
		// webhook settlement works without the stored id.
		s.logger.Warn().Err(err).Str("donation_id", d.ID).Msg("donation: store session id failed")
	}

	s.logger.Info().
		Str("donation_id", d.ID).
		Str("creator_id", creator.ID).
		Int64("amount", in.Price).
		Int64("fee", fee).
		Msg("donation: checkout opened")

	return &Result{SessionID: sess.ID}, nil
}

// SettleCheckout applies a verified webhook event to the referenced donation.
// Replays and out-of-order deliveries are no-ops thanks to the PENDING guard.
func (s *Service) SettleCheckout(ctx context.Context, ev payments.WebhookEvent) error {
	var target domain.DonationStatus
	switch ev.Type {
	case payments.WebhookCheckoutCompleted:
		target = domain.DonationStatusPaid
	case payments.WebhookCheckoutExpired:
		target = domain.DonationStatusExpired
	default:
		return nil
	}

	donationID := ev.DonationID
	if donationID == "" {
		if ev.SessionID == "" {
			return fmt.Errorf("settle checkout: event references no donation")
		}
		d, err := s.donations.GetByCheckoutSession(ctx, ev.SessionID)
		if err != nil {
			return fmt.Errorf("settle checkout: resolve session %s: %w", ev.SessionID, err)
		}
		donationID = d.ID
	}

	changed, err := s.donations.UpdateStatus(ctx, donationID, domain.DonationStatusPending, target)
	if err != nil {
		return fmt.Errorf("settle checkout: update donation %s: %w", donationID, err)
	}
	if !changed {
		s.logger.Debug().Str("donation_id", donationID).Msg("donation: already settled")
		return nil
	}

	s.logger.Info().Str("donation_id", donationID).Str("status", string(target)).Msg("donation: settled")
	return nil
}

// ReconcilePending settles PENDING donations older than the given age by
// asking the provider for their checkout session state. Donations that never
// got a session are expired directly. Returns the number of settled records.
func (s *Service) ReconcilePending(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	stale, err := s.donations.ListStalePending(ctx, olderThan, limit)
	if err != nil {
		return 0, fmt.Errorf("reconcile: list stale pending: %w", err)
	}

	settled := 0
	for _, d := range stale {
		target, ok := s.resolveStaleStatus(ctx, d)
		if !ok {
			continue
		}
		changed, err := s.donations.UpdateStatus(ctx, d.ID, domain.DonationStatusPending, target)
		if err != nil {
			s.logger.Error().Err(err).Str("donation_id", d.ID).Msg("reconcile: update failed")
			continue
		}
		if changed {
			settled++
			s.logger.Info().Str("donation_id", d.ID).Str("status", string(target)).Msg("reconcile: settled")
		}
	}
	return settled, nil
}

func (s *Service) resolveStaleStatus(ctx context.Context, d domain.Donation) (domain.DonationStatus, bool) {
	if d.CheckoutSessionID == nil || *d.CheckoutSessionID == "" {
		return domain.DonationStatusExpired, true
	}
	sess, err := s.provider.RetrieveCheckoutSession(ctx, *d.CheckoutSessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("donation_id", d.ID).Msg("reconcile: session retrieval failed")
		return "", false
	}
	switch {
	case sess.Status == payments.CheckoutStatusComplete && sess.Paid:
		return domain.DonationStatusPaid, true
	case sess.Status == payments.CheckoutStatusExpired:
		return domain.DonationStatusExpired, true
	default:
		// Still open; leave it for the webhook or the next pass.
		return "", false
	}
}

func displayName(u *domain.User) string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return "o criador"
}
