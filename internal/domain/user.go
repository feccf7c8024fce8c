package domain

import "time"

// User represents a platform account. Every user can act as a creator once a
// Stripe connected account is linked to the profile.
type User struct {
	ID              string
	Name            *string
	Username        *string
	Bio             *string
	Email           *string
	Image           *string
	StripeAccountID *string
	// TransfersActive caches the last known state of the connected account's
	// transfers capability. The donation flow always re-checks it live.
	TransfersActive bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanReceiveDonations reports whether the user has a connected account linked.
func (u User) CanReceiveDonations() bool {
	return u.StripeAccountID != nil && *u.StripeAccountID != ""
}
