package repo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
)

const donationColumns = "id, user_id, donor_name, donor_message, donor_country, amount_int, status, checkout_session_id, created_at, updated_at"

// DonationRepositoryPG implements domain.DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	db DBTX
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(db DBTX) *DonationRepositoryPG {
	return &DonationRepositoryPG{db: db}
}

// Create inserts a new donation record.
func (r *DonationRepositoryPG) Create(ctx context.Context, donation *domain.Donation) error {
	_, err := r.db.Exec(ctx, `
INSERT INTO donations (id, user_id, donor_name, donor_message, donor_country, amount_int, status)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`, donation.ID, donation.UserID, donation.DonorName, donation.DonorMessage,
		donation.DonorCountry, donation.AmountInt, donation.Status)
	return err
}

// SetCheckoutSession records the checkout session created for a donation.
func (r *DonationRepositoryPG) SetCheckoutSession(ctx context.Context, donationID, sessionID string) error {
	_, err := r.db.Exec(ctx, `
UPDATE donations
SET checkout_session_id = $2,
    updated_at = NOW()
WHERE id = $1;
`, donationID, sessionID)
	return err
}

// UpdateStatus transitions a donation between statuses. The previous status is
// part of the predicate so replays never overwrite a settled record.
func (r *DonationRepositoryPG) UpdateStatus(ctx context.Context, donationID string, from, to domain.DonationStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `
UPDATE donations
SET status = $3,
    updated_at = NOW()
WHERE id = $1
  AND status = $2;
`, donationID, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetByCheckoutSession fetches the donation tied to a checkout session.
func (r *DonationRepositoryPG) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Donation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+donationColumns+` FROM donations WHERE checkout_session_id = $1`, sessionID)
	return scanDonation(row)
}

// ListRecentPaid returns the newest settled donations for a creator.
func (r *DonationRepositoryPG) ListRecentPaid(ctx context.Context, userID string, limit int) ([]domain.Donation, error) {
	rows, err := r.db.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE user_id = $1
  AND status = 'PAID'
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

// ListStalePending returns PENDING donations older than the given age. The
// reconciler uses it to settle records whose webhook never arrived.
func (r *DonationRepositoryPG) ListStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]domain.Donation, error) {
	cutoff := time.Now().Add(-olderThan)
	rows, err := r.db.Query(ctx, `
SELECT `+donationColumns+`
FROM donations
WHERE status = 'PENDING'
  AND created_at < $1
ORDER BY created_at ASC
LIMIT $2;
`, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

func collectDonations(rows pgx.Rows) ([]domain.Donation, error) {
	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.UserID, &d.DonorName, &d.DonorMessage, &d.DonorCountry,
			&d.AmountInt, &d.Status, &d.CheckoutSessionID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanDonation(row pgx.Row) (*domain.Donation, error) {
	var d domain.Donation
	err := row.Scan(&d.ID, &d.UserID, &d.DonorName, &d.DonorMessage, &d.DonorCountry,
		&d.AmountInt, &d.Status, &d.CheckoutSessionID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}
