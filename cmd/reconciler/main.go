package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/donation"
	"server/internal/infra"
	"server/internal/payments"
)

const reconcileBatchSize = 50

// The reconciler settles PENDING donations whose webhook never arrived: it
// asks the provider for the checkout session state and applies the outcome.
func main() {
	var (
		intervalFlag time.Duration
		minAgeFlag   time.Duration
		onceFlag     bool
	)
	flag.DurationVar(&intervalFlag, "interval", 5*time.Minute, "delay between reconciliation passes")
	flag.DurationVar(&minAgeFlag, "min-age", time.Hour, "only touch PENDING donations older than this")
	flag.BoolVar(&onceFlag, "once", false, "run a single pass and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("reconciler: db connection failed")
	}
	defer pool.Close()

	users := repo.NewUserRepository(pool)
	donations := repo.NewDonationRepository(pool)
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)
	service := donation.NewService(users, donations, provider, cfg.HostBaseURL, logger)

	runPass := func() {
		passCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		settled, err := service.ReconcilePending(passCtx, minAgeFlag, reconcileBatchSize)
		if err != nil {
			logger.Error().Err(err).Msg("reconciler: pass failed")
			return
		}
		if settled > 0 {
			logger.Info().Int("settled", settled).Msg("reconciler: pass done")
		}
	}

	runPass()
	if onceFlag {
		return
	}

	ticker := time.NewTicker(intervalFlag)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("reconciler: stopped")
			return
		case <-ticker.C:
			runPass()
		}
	}
}
