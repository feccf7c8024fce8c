package payments

import "context"

// Account is the subset of connected-account state the donation flow needs.
type Account struct {
	ID              string
	TransfersActive bool
}

// CheckoutStatus mirrors the provider-side lifecycle of a hosted checkout page.
type CheckoutStatus string

const (
	CheckoutStatusOpen     CheckoutStatus = "open"
	CheckoutStatusComplete CheckoutStatus = "complete"
	CheckoutStatusExpired  CheckoutStatus = "expired"
)

// CheckoutSession is the provider-owned checkout flow, referenced by id.
type CheckoutSession struct {
	ID     string
	URL    string
	Status CheckoutStatus
	Paid   bool
}

// CheckoutParams carries everything needed to open a hosted checkout for a
// single donation. AmountInt is the gross amount in minor units; the
// application fee is deducted through the provider's transfer mechanism.
type CheckoutParams struct {
	SuccessURL       string
	CancelURL        string
	CreatorName      string
	CreatorID        string
	CreatorAccountID string
	DonationID       string
	DonorName        string
	DonorMessage     string
	AmountInt        int64
	ApplicationFee   int64
}

// WebhookEventType enumerates the provider events the platform reacts to.
type WebhookEventType string

const (
	WebhookCheckoutCompleted WebhookEventType = "checkout.session.completed"
	WebhookCheckoutExpired   WebhookEventType = "checkout.session.expired"
)

// WebhookEvent is a verified provider notification.
type WebhookEvent struct {
	Type       WebhookEventType
	SessionID  string
	DonationID string
}

// Provider wraps the payment-provider operations used by the donation flow.
// Every call returns an explicit error; callers never see provider panics or
// untyped failures.
type Provider interface {
	RetrieveAccount(ctx context.Context, accountID string) (*Account, error)
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
	RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// WebhookParser verifies and decodes incoming provider notifications.
type WebhookParser interface {
	Parse(payload []byte, signature string) (*WebhookEvent, error)
}
