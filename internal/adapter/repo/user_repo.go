package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
)

const userColumns = "id, name, username, bio, email, image, stripe_account_id, transfers_active, created_at, updated_at"

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	db DBTX
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(db DBTX) *UserRepositoryPG {
	return &UserRepositoryPG{db: db}
}

// GetByID fetches a user by UUID.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUsername fetches a user by the public profile slug.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// GetByStripeAccountID fetches the creator owning the given connected account.
func (r *UserRepositoryPG) GetByStripeAccountID(ctx context.Context, accountID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE stripe_account_id = $1`, accountID)
	return scanUser(row)
}

// SetStripeAccount links a connected account to a user and records the cached
// transfers capability state.
func (r *UserRepositoryPG) SetStripeAccount(ctx context.Context, userID, accountID string, transfersActive bool) error {
	tag, err := r.db.Exec(ctx, `
UPDATE users
SET stripe_account_id = $2,
    transfers_active = $3,
    updated_at = NOW()
WHERE id = $1;
`, userID, accountID, transfersActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Bio, &u.Email, &u.Image,
		&u.StripeAccountID, &u.TransfersActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
