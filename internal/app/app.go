package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	sothttp "github.com/yungbote/sotfinder-backend/internal/http"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Remote   *RemoteStore
	Services Services
	Server   *sothttp.Server

	otelShutdown func(context.Context) error
}

// New wires the whole service from the environment. The caller owns Close.
func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if logMode != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	return NewWithConfig(ctx, log, cfg)
}

func NewWithConfig(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	metrics := observability.NewMetrics()
	shutdown := observability.InitOTel(ctx, log, cfg.Otel)

	remote, err := resolveRemoteStore(log, cfg, metrics)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet, err := wireRepos(log, cfg, remote)
	if err != nil {
		_ = remote.Close()
		log.Sync()
		return nil, err
	}

	clientset, err := wireClients(log, cfg, metrics)
	if err != nil {
		_ = remote.Close()
		_ = closeDB(reposet.LocalDB)
		log.Sync()
		return nil, err
	}

	serviceset := wireServices(log, cfg, clientset, reposet, remote, metrics)
	handlerset := wireHandlers(log, cfg, clientset, reposet, serviceset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Metrics:      metrics,
		Clients:      clientset,
		Repos:        reposet,
		Remote:       remote,
		Services:     serviceset,
		Server:       wireServer(log, cfg, handlerset, metrics),
		otelShutdown: shutdown,
	}, nil
}

// Run serves HTTP on PORT until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting server", "addr", addr, "remote_store", a.Remote.Mode)
	return a.Server.Run(ctx, addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if err := a.Remote.Close(); err != nil {
		a.Log.Warn("Failed to close remote store", "error", err)
	}
	if err := closeDB(a.Repos.LocalDB); err != nil {
		a.Log.Warn("Failed to close local cache", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
