// Command server runs the quotevault credential-authentication service.
//
// Configuration is layered: built-in defaults, a YAML config file
// (discovered via QUOTEVAULT_CONFIG, ./config.yaml, or
// /etc/quotevault/config.yaml), then QUOTEVAULT_* environment variables.
// The token signing secret is required; with storage type "postgres" so is
// the DSN. The process refuses to start half-configured.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quotevault/quotevault/pkg/account"
	"github.com/quotevault/quotevault/pkg/auth"
	"github.com/quotevault/quotevault/pkg/config"
	"github.com/quotevault/quotevault/pkg/debug"
	"github.com/quotevault/quotevault/pkg/storage"
	"github.com/quotevault/quotevault/pkg/storage/memory"
	"github.com/quotevault/quotevault/pkg/storage/postgres"
	transporthttp "github.com/quotevault/quotevault/pkg/transport/http"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level)

	// Open the user store. An unreachable database is a startup failure.
	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	// Build the core: hasher, token service, orchestrator. The signing
	// secret is injected once here and nowhere else.
	accounts := account.New(account.Config{
		Store:    store,
		Hasher:   auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:   auth.NewTokenService([]byte(cfg.Auth.SecretKey)),
		TokenTTL: cfg.Auth.TokenTTL,
	})

	adapterCfg := transporthttp.DefaultConfig()
	adapterCfg.MaxBodySize = cfg.Server.MaxBodySize
	adapter := transporthttp.NewAdapter(accounts, adapterCfg)

	// Build the mux with health and metrics endpoints alongside the API.
	mux := http.NewServeMux()
	mux.Handle("/api/", adapter.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := store.HealthCheck(ctx); err != nil {
			http.Error(w, "store unavailable\n", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if cfg.Observability.Metrics.Enabled {
		mux.Handle("GET "+cfg.Observability.Metrics.Path, promhttp.Handler())
	}

	srvCfg := transporthttp.DefaultServerConfig()
	srvCfg.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
	srvCfg.ReadTimeout = cfg.Server.ReadTimeout
	srvCfg.WriteTimeout = cfg.Server.WriteTimeout
	srvCfg.CORSOrigins = cfg.Server.CORSOrigins

	slog.Info("server configured",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Type,
		"token_ttl", cfg.Auth.TokenTTL,
	)

	return transporthttp.NewServer(mux, srvCfg).ListenAndServe()
}

// openStore creates the configured user store.
func openStore(cfg *config.Config) (storage.UserStore, error) {
	switch cfg.Storage.Type {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		store, err := postgres.New(ctx, postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("storage connected", "type", "postgres")
		return store, nil
	default:
		slog.Info("storage enabled", "type", "memory")
		return memory.New(), nil
	}
}
