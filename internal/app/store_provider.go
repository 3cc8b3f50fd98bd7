package app

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/sotfinder-backend/internal/clients/redis"
	"github.com/yungbote/sotfinder-backend/internal/data/db"
	"github.com/yungbote/sotfinder-backend/internal/data/repos"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

type RemoteStoreMode string

const (
	RemoteStorePostgres RemoteStoreMode = "postgres"
	RemoteStoreRedis    RemoteStoreMode = "redis"
	RemoteStoreMemory   RemoteStoreMode = "memory"
	RemoteStoreNone     RemoteStoreMode = "none"
)

var (
	openPostgres = func(log *logger.Logger) (*gorm.DB, error) {
		pg, err := db.NewPostgresService(log)
		if err != nil {
			return nil, err
		}
		return pg.DB(), nil
	}
	newRedisStore = redis.NewStore
)

type StoreBootstrapErrorCode string

const (
	StoreBootstrapErrorInvalidMode      StoreBootstrapErrorCode = "invalid_mode"
	StoreBootstrapErrorMissingRedisAddr StoreBootstrapErrorCode = "missing_redis_addr"
	StoreBootstrapErrorConnectFailed    StoreBootstrapErrorCode = "connect_failed"
	StoreBootstrapErrorMigrateFailed    StoreBootstrapErrorCode = "migrate_failed"
)

type StoreBootstrapError struct {
	Code  StoreBootstrapErrorCode
	Mode  RemoteStoreMode
	Cause error
}

func (e *StoreBootstrapError) Error() string {
	if e == nil {
		return "remote store bootstrap failed"
	}
	return fmt.Sprintf("remote store bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StoreBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// RemoteStore is the shared tier picked by REMOTE_STORE. DB is set only in postgres mode.
type RemoteStore struct {
	Mode   RemoteStoreMode
	Remote store.Remote
	DB     *gorm.DB
	close  func() error
}

func (r *RemoteStore) Close() error {
	if r == nil || r.close == nil {
		return nil
	}
	return r.close()
}

func resolveRemoteStore(log *logger.Logger, cfg Config, metrics *observability.Metrics) (*RemoteStore, error) {
	mode := RemoteStoreMode(strings.ToLower(strings.TrimSpace(string(cfg.RemoteStore))))
	if mode == "" {
		mode = RemoteStoreNone
	}
	log.Info("Selecting remote store", "mode", mode)

	rs, err := openRemoteStore(log, mode, cfg, metrics)
	if err != nil {
		code := storeBootstrapErrorCode(err)
		metrics.ObserveStoreBootstrap(string(mode), "error", string(code))
		log.Error("Remote store bootstrap failed", "mode", mode, "error_code", code, "error", err)
		return nil, err
	}
	metrics.ObserveStoreBootstrap(string(mode), "success", "none")
	return rs, nil
}

func openRemoteStore(log *logger.Logger, mode RemoteStoreMode, cfg Config, metrics *observability.Metrics) (*RemoteStore, error) {
	switch mode {
	case RemoteStoreNone:
		return &RemoteStore{Mode: mode, Remote: store.NopRemote{}}, nil
	case RemoteStoreMemory:
		return &RemoteStore{Mode: mode, Remote: store.NewMemoryRemote()}, nil
	case RemoteStorePostgres:
		gdb, err := openPostgres(log)
		if err != nil {
			return nil, &StoreBootstrapError{Code: StoreBootstrapErrorConnectFailed, Mode: mode, Cause: err}
		}
		if err := db.AutoMigrateAll(gdb); err != nil {
			return nil, &StoreBootstrapError{Code: StoreBootstrapErrorMigrateFailed, Mode: mode, Cause: err}
		}
		if err := metrics.RegisterDBStats(gdb, "postgres"); err != nil {
			log.Warn("Failed to register postgres pool metrics", "error", err)
		}
		return &RemoteStore{
			Mode:   mode,
			Remote: repos.NewRemoteStore(gdb, log),
			DB:     gdb,
			close:  func() error { return closeDB(gdb) },
		}, nil
	case RemoteStoreRedis:
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			return nil, &StoreBootstrapError{Code: StoreBootstrapErrorMissingRedisAddr, Mode: mode, Cause: errors.New("REDIS_ADDR is empty")}
		}
		rs, err := newRedisStore(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			return nil, &StoreBootstrapError{Code: StoreBootstrapErrorConnectFailed, Mode: mode, Cause: err}
		}
		return &RemoteStore{Mode: mode, Remote: rs, close: rs.Close}, nil
	default:
		return nil, &StoreBootstrapError{
			Code:  StoreBootstrapErrorInvalidMode,
			Mode:  mode,
			Cause: fmt.Errorf("unsupported remote store %q", mode),
		}
	}
}

func storeBootstrapErrorCode(err error) StoreBootstrapErrorCode {
	var bootstrapErr *StoreBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StoreBootstrapErrorConnectFailed
}

func closeDB(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
