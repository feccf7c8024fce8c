package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/payments"
)

// creatorsync links a Stripe connected account to a user and refreshes the
// cached transfers-capability state. Run it after onboarding a creator or
// when a capability update was missed.
func main() {
	var (
		idFlag       string
		usernameFlag string
		accountFlag  string
		refreshFlag  bool
	)

	flag.StringVar(&idFlag, "id", "", "user ID to update (UUID)")
	flag.StringVar(&usernameFlag, "username", "", "username to update")
	flag.StringVar(&accountFlag, "account", "", "connected account id to link (acct_...)")
	flag.BoolVar(&refreshFlag, "refresh", false, "re-check the transfers capability of the already linked account")
	flag.Parse()

	userID := strings.TrimSpace(idFlag)
	username := strings.TrimSpace(usernameFlag)
	accountID := strings.TrimSpace(accountFlag)

	if userID == "" && username == "" {
		exitWithError(errors.New("either -id or -username must be provided"))
	}
	if accountID == "" && !refreshFlag {
		exitWithError(errors.New("provide -account to link, or -refresh to re-check the linked account"))
	}

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}
	secretKey := strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	if secretKey == "" {
		exitWithError(errors.New("STRIPE_SECRET_KEY is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	users := repo.NewUserRepository(pool)

	target, err := lookupUser(ctx, users, userID, username)
	if err != nil {
		exitWithError(err)
	}

	if accountID == "" {
		if target.StripeAccountID == nil || *target.StripeAccountID == "" {
			exitWithError(errors.New("user has no linked account to refresh"))
		}
		accountID = *target.StripeAccountID
	}

	provider := payments.NewStripeProvider(secretKey)
	acct, err := provider.RetrieveAccount(ctx, accountID)
	if err != nil {
		exitWithError(err)
	}

	if err := users.SetStripeAccount(ctx, target.ID, acct.ID, acct.TransfersActive); err != nil {
		exitWithError(fmt.Errorf("update user: %w", err))
	}

	fmt.Printf("user %s linked to %s (transfers active: %v)\n", target.ID, acct.ID, acct.TransfersActive)
}

func lookupUser(ctx context.Context, users *repo.UserRepositoryPG, userID, username string) (*domain.User, error) {
	if userID != "" {
		u, err := users.GetByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("lookup user %s: %w", userID, err)
		}
		return u, nil
	}
	u, err := users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", username, err)
	}
	return u, nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "creatorsync:", err)
	os.Exit(1)
}
