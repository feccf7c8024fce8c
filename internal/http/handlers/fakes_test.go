package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/donation"
	"server/internal/payments"
)

func strPtr(s string) *string { return &s }

var errTest = errors.New("backend unavailable")

func userWithOnlyID(id string) *domain.User {
	return &domain.User{ID: id}
}

type fakeUsers struct {
	byID       map[string]*domain.User
	byUsername map[string]*domain.User
	byAccount  map[string]*domain.User
	err        error
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{
		byID:       map[string]*domain.User{},
		byUsername: map[string]*domain.User{},
		byAccount:  map[string]*domain.User{},
	}
	for _, u := range users {
		f.byID[u.ID] = u
		if u.Username != nil {
			f.byUsername[*u.Username] = u
		}
		if u.StripeAccountID != nil {
			f.byAccount[*u.StripeAccountID] = u
		}
	}
	return f
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByStripeAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byAccount[accountID]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) SetStripeAccount(ctx context.Context, userID, accountID string, transfersActive bool) error {
	return nil
}

type fakeDonations struct {
	created  []*domain.Donation
	paid     map[string][]domain.Donation
	statuses map[string]domain.DonationStatus
	listErr  error
}

func newFakeDonations() *fakeDonations {
	return &fakeDonations{
		paid:     map[string][]domain.Donation{},
		statuses: map[string]domain.DonationStatus{},
	}
}

func (f *fakeDonations) Create(ctx context.Context, d *domain.Donation) error {
	copied := *d
	f.created = append(f.created, &copied)
	f.statuses[d.ID] = d.Status
	return nil
}

func (f *fakeDonations) SetCheckoutSession(ctx context.Context, donationID, sessionID string) error {
	return nil
}

func (f *fakeDonations) UpdateStatus(ctx context.Context, donationID string, from, to domain.DonationStatus) (bool, error) {
	if f.statuses[donationID] != from {
		return false, nil
	}
	f.statuses[donationID] = to
	return true, nil
}

func (f *fakeDonations) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Donation, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeDonations) ListRecentPaid(ctx context.Context, userID string, limit int) ([]domain.Donation, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.paid[userID], nil
}

func (f *fakeDonations) ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Donation, error) {
	return nil, nil
}

type fakeProvider struct {
	accounts   map[string]*payments.Account
	sessionErr error
	sessionID  string
}

func (f *fakeProvider) RetrieveAccount(ctx context.Context, accountID string) (*payments.Account, error) {
	if a, ok := f.accounts[accountID]; ok {
		return a, nil
	}
	return nil, errors.New("no such account")
}

func (f *fakeProvider) CreateCheckoutSession(ctx context.Context, p payments.CheckoutParams) (*payments.CheckoutSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	return &payments.CheckoutSession{ID: f.sessionID, Status: payments.CheckoutStatusOpen}, nil
}

func (f *fakeProvider) RetrieveCheckoutSession(ctx context.Context, id string) (*payments.CheckoutSession, error) {
	return nil, errors.New("no such session")
}

type fakeWebhookParser struct {
	event *payments.WebhookEvent
	err   error
}

func (f *fakeWebhookParser) Parse(payload []byte, signature string) (*payments.WebhookEvent, error) {
	return f.event, f.err
}

// newTestApp wires an App against fakes with a verified creator in place.
func newTestApp() (*App, *fakeUsers, *fakeDonations, *fakeProvider) {
	creator := &domain.User{
		ID:              "user-1",
		Name:            strPtr("Fulano"),
		Username:        strPtr("fulano"),
		Bio:             strPtr("faço conteúdo"),
		Email:           strPtr("fulano@example.com"),
		Image:           strPtr("https://cdn.example.com/fulano.png"),
		StripeAccountID: strPtr("acct_123"),
	}
	users := newFakeUsers(creator)
	donations := newFakeDonations()
	provider := &fakeProvider{
		accounts:  map[string]*payments.Account{"acct_123": {ID: "acct_123", TransfersActive: true}},
		sessionID: "cs_test_1",
	}
	service := donation.NewService(users, donations, provider, "http://localhost:3000", zerolog.Nop())
	app := &App{
		Logger:    zerolog.Nop(),
		Service:   service,
		Users:     users,
		Donations: donations,
		Webhooks:  &fakeWebhookParser{},
		PublicKey: "pk_test_123",
	}
	return app, users, donations, provider
}
