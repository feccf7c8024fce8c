package domain

import "time"

// DonationStatus enumerates the lifecycle of a donation record.
type DonationStatus string

const (
	DonationStatusPending DonationStatus = "PENDING"
	DonationStatusPaid    DonationStatus = "PAID"
	DonationStatusFailed  DonationStatus = "FAILED"
	DonationStatusExpired DonationStatus = "EXPIRED"
)

// Donation represents a supporter contribution to a creator. AmountInt is the
// gross amount in minor currency units; the platform fee is never subtracted
// from the stored value.
type Donation struct {
	ID                string
	UserID            string
	DonorName         string
	DonorMessage      string
	DonorCountry      string
	AmountInt         int64
	Status            DonationStatus
	CheckoutSessionID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
