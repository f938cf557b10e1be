package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"ekowallet/internal/config"
	"ekowallet/internal/domain"
	"ekowallet/internal/observability/logging"
	"ekowallet/internal/observability/metrics"
	"ekowallet/internal/observability/middleware"
	"ekowallet/internal/secrets"
	impl "ekowallet/internal/service/impl"
	"ekowallet/internal/store"
	httpx "ekowallet/internal/transport/http"
	"ekowallet/pkg/db"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	logger := logging.NewLogger(logging.Config{
		ServiceName: "walletd",
		Environment: env,
		Level:       os.Getenv("LOG_LEVEL"),
	})
	slog.SetDefault(logger)

	logger.Info("starting service")

	cfg := config.Load()

	metrics.MustRegister("walletd")

	gdb, err := db.OpenGorm(db.Config{DSN: cfg.DatabaseURL, LogSQL: env == "dev"})
	if err != nil {
		logger.Error("gorm open", "error", err)
		os.Exit(1)
	}
	if err := gdb.AutoMigrate(&domain.User{}, &domain.WalletSecret{}); err != nil {
		logger.Error("migrate", "error", err)
		os.Exit(1)
	}

	st := store.New(gdb)

	// The scrypt cost is paid once here, before the server accepts traffic.
	keys, err := secrets.NewKeyring([]byte(cfg.EncryptionPassphrase), []byte(cfg.EncryptionSalt))
	if err != nil {
		logger.Error("derive encryption key", "error", err)
		os.Exit(1)
	}

	pw := impl.NewPasswordServiceBcrypt()
	ts := impl.NewTokenServiceHS256(impl.TokenConfig{
		Issuer:     cfg.Issuer,
		AccessTTL:  cfg.AccessTTL,
		SigningKey: []byte(cfg.SigningKey),
	})
	totp := impl.NewTOTPServiceImpl(st, impl.TOTPConfig{
		Issuer: cfg.TOTPIssuer,
		Digits: cfg.TOTPDigits,
		Step:   cfg.TOTPStep,
		Skew:   cfg.TOTPSkew,
	})
	sender := impl.NewLogSender()
	wallets := impl.NewWalletServiceImpl(st, pw, keys)
	auth := impl.NewAuthServiceImpl(st, pw, ts, totp, sender, cfg.BaseURL)

	mux := httpx.NewRouter(httpx.RouterConfig{MnemonicEntropyBits: cfg.MnemonicEntropyBits}, wallets, auth, totp)
	handler := middleware.WithRequestAndTrace(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("wallet service listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
