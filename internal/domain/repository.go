package domain

import (
	"context"
	"time"
)

// UserRepository defines access methods for users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByStripeAccountID(ctx context.Context, accountID string) (*User, error)
	SetStripeAccount(ctx context.Context, userID, accountID string, transfersActive bool) error
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	SetCheckoutSession(ctx context.Context, donationID, sessionID string) error
	// UpdateStatus transitions a donation from one status to another and
	// reports whether a row actually changed, so settlement stays idempotent.
	UpdateStatus(ctx context.Context, donationID string, from, to DonationStatus) (bool, error)
	GetByCheckoutSession(ctx context.Context, sessionID string) (*Donation, error)
	ListRecentPaid(ctx context.Context, userID string, limit int) ([]Donation, error)
	ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]Donation, error)
}
