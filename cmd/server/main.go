package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/groupwallet/internal/auth"
	"github.com/mmynk/groupwallet/internal/config"
	"github.com/mmynk/groupwallet/internal/lock"
	"github.com/mmynk/groupwallet/internal/metrics"
	"github.com/mmynk/groupwallet/internal/middleware"
	"github.com/mmynk/groupwallet/internal/service"
	"github.com/mmynk/groupwallet/internal/storage"
	"github.com/mmynk/groupwallet/internal/storage/memory"
	"github.com/mmynk/groupwallet/internal/storage/sqlite"
	"github.com/mmynk/groupwallet/internal/voting"
	"github.com/mmynk/groupwallet/internal/wallet"
	"github.com/mmynk/groupwallet/pkg/logging"
	pb "github.com/mmynk/groupwallet/pkg/walletrpc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup()
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.SetupWith(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	locker, closeLocker, err := openLocker(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	policy, err := voting.PolicyByName(cfg.VotingPolicy)
	if err != nil {
		return err
	}
	slog.Info("Voting policy selected", "policy", policy.Name())

	m := metrics.New()
	manager := wallet.New(store, voting.NewEngine(policy),
		wallet.WithLocker(locker),
		wallet.WithMetrics(m),
	)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewOTPAuthenticator(auth.LogSender{}, cfg.OTPTTL)

	identify := middleware.RequireAuth(jwtManager)
	if cfg.AuthDisabled {
		slog.Warn("Token checks disabled, trusting the phone header", "header", middleware.PhoneHeader)
		identify = middleware.TrustPhoneHeader()
	}
	protected := connect.WithInterceptors(identify, middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m))
	public := connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m))

	mux := http.NewServeMux()
	mux.Handle(pb.NewGroupServiceHandler(service.NewGroupService(manager), protected))
	mux.Handle(pb.NewTransactionServiceHandler(service.NewTransactionService(manager), protected))
	mux.Handle(pb.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, cfg.OTPTTL, slog.Default()), public))
	mux.Handle("/metrics", m.Handler())
	p, _ := store.(pinger)
	mux.HandleFunc("/healthz", healthHandler(p))

	server := &http.Server{
		Addr: cfg.Addr(),
		// h2c serves HTTP/2 without TLS, which Connect clients use.
		Handler:           h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", cfg.Addr(), "url", fmt.Sprintf("http://localhost%s", cfg.Addr()))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Warn("Using in-memory storage, data is lost on restart")
		return memory.New(), nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "database", cfg.DBPath)
		return store, nil
	}
}

// openLocker uses Redis when REDIS_URL is set so several replicas can share
// one database. Otherwise groups are locked in process.
func openLocker(ctx context.Context, cfg config.Config) (lock.Locker, func(), error) {
	if cfg.RedisURL == "" {
		return lock.NewKeyedMutex(), func() {}, nil
	}
	locker, err := lock.NewRedisLockerFromURL(ctx, cfg.RedisURL, cfg.LockTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	slog.Info("Using Redis group locks", "lock_ttl", cfg.LockTTL)
	return locker, func() {
		if err := locker.Close(); err != nil {
			slog.Warn("Failed to close Redis client", "error", err)
		}
	}, nil
}
