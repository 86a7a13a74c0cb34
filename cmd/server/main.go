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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/config"
	"github.com/mmynk/quicksplit/internal/entry"
	"github.com/mmynk/quicksplit/internal/metrics"
	"github.com/mmynk/quicksplit/internal/middleware"
	"github.com/mmynk/quicksplit/internal/money"
	"github.com/mmynk/quicksplit/internal/service"
	"github.com/mmynk/quicksplit/internal/storage/memory"
	"github.com/mmynk/quicksplit/pkg/api"
	"github.com/mmynk/quicksplit/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	formatter, err := money.NewFormatter(cfg.Currency, cfg.Locale)
	if err != nil {
		return fmt.Errorf("failed to initialize formatter: %w", err)
	}

	store := memory.New(cfg.SessionTTL, cfg.SweepInterval)
	defer store.Close()
	slog.Info("Session store initialized", "ttl", cfg.SessionTTL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg, store.Len)

	tokens := auth.NewJWTManager(cfg.SessionSecret, cfg.SessionTTL)
	svc := service.NewLedgerService(store, entry.NewValidator(formatter), formatter, tokens, m)

	mux := http.NewServeMux()

	// Register Connect services
	ledgerPath, ledgerHandler := api.NewLedgerServiceHandler(svc, connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireSession(tokens, api.LedgerServiceStartSessionProcedure),
		middleware.LoggingInterceptor(slog.Default()),
	))
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(middleware.HTTPLogging(middleware.CORS(cfg.CORSOrigin)(mux)), &http2.Server{})

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", cfg.ListenAddr,
			"currency", formatter.Currency(),
			"locale", formatter.Locale(),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
