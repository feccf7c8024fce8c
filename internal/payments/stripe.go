package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeProvider implements Provider on top of the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a provider bound to the given secret key.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// RetrieveAccount fetches a connected account and reduces it to the transfer
// capability state the donation flow checks.
func (p *StripeProvider) RetrieveAccount(ctx context.Context, accountID string) (*Account, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx
	acct, err := p.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve account %s: %w", accountID, err)
	}
	active := acct.Capabilities != nil && acct.Capabilities.Transfers == stripe.AccountCapabilityStatusActive
	return &Account{ID: acct.ID, TransfersActive: active}, nil
}

// CreateCheckoutSession opens a hosted checkout for a single donation.
func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (*CheckoutSession, error) {
	params := buildSessionParams(cp)
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return mapSession(sess), nil
}

// RetrieveCheckoutSession fetches the current state of a checkout session.
func (p *StripeProvider) RetrieveCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: retrieve checkout session %s: %w", id, err)
	}
	return mapSession(sess), nil
}

// buildSessionParams translates donation checkout parameters into the Stripe
// request shape: one card line item in BRL, the platform fee taken as an
// application fee, and funds routed to the creator's connected account. The
// metadata rides on both the session and the payment intent so webhook
// handlers can resolve the donation either way.
func buildSessionParams(cp CheckoutParams) *stripe.CheckoutSessionParams {
	metadata := map[string]string{
		"donorName":    cp.DonorName,
		"donorMessage": cp.DonorMessage,
		"donationId":   cp.DonationID,
		"creatorId":    cp.CreatorID,
	}
	return &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(cp.SuccessURL),
		CancelURL:          stripe.String(cp.CancelURL),
		Metadata:           metadata,
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyBRL)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Apoiar " + cp.CreatorName),
					},
					UnitAmount: stripe.Int64(cp.AmountInt),
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(cp.ApplicationFee),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(cp.CreatorAccountID),
			},
			Metadata: metadata,
		},
	}
}

func mapSession(sess *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:     sess.ID,
		URL:    sess.URL,
		Status: CheckoutStatus(sess.Status),
		Paid:   sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
}

// StripeWebhookParser implements WebhookParser using Stripe signature
// verification.
type StripeWebhookParser struct {
	secret string
}

// NewStripeWebhookParser builds a parser for the given endpoint signing secret.
func NewStripeWebhookParser(secret string) *StripeWebhookParser {
	return &StripeWebhookParser{secret: secret}
}

// Parse verifies the payload signature and extracts the fields the platform
// reacts to. Event types outside the checkout lifecycle return a nil event.
func (p *StripeWebhookParser) Parse(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, p.secret)
	if err != nil {
		return nil, fmt.Errorf("stripe: verify webhook: %w", err)
	}

	switch string(event.Type) {
	case string(WebhookCheckoutCompleted), string(WebhookCheckoutExpired):
	default:
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("stripe: decode webhook session: %w", err)
	}

	return &WebhookEvent{
		Type:       WebhookEventType(event.Type),
		SessionID:  sess.ID,
		DonationID: sess.Metadata["donationId"],
	}, nil
}
