package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/sotfinder-backend/internal/clients/redis"
	"github.com/yungbote/sotfinder-backend/internal/data/db"
	"github.com/yungbote/sotfinder-backend/internal/data/repos"
	"github.com/yungbote/sotfinder-backend/internal/modules/curriculum/store"
	"github.com/yungbote/sotfinder-backend/internal/observability"
	"github.com/yungbote/sotfinder-backend/internal/pkg/logger"
)

func TestResolveRemoteStoreModes(t *testing.T) {
	log := logger.Nop()

	rs, err := resolveRemoteStore(log, Config{}, nil)
	if err != nil {
		t.Fatalf("resolveRemoteStore(default): %v", err)
	}
	if rs.Mode != RemoteStoreNone {
		t.Fatalf("mode: want=%q got=%q", RemoteStoreNone, rs.Mode)
	}
	if _, ok := rs.Remote.(store.NopRemote); !ok {
		t.Fatalf("expected NopRemote, got=%T", rs.Remote)
	}

	rs, err = resolveRemoteStore(log, Config{RemoteStore: "Memory"}, nil)
	if err != nil {
		t.Fatalf("resolveRemoteStore(memory): %v", err)
	}
	if rs.Mode != RemoteStoreMemory || rs.DB != nil {
		t.Fatalf("unexpected memory store: %+v", rs)
	}
}

func TestResolveRemoteStoreInvalidMode(t *testing.T) {
	metrics := observability.NewMetrics()
	_, err := resolveRemoteStore(logger.Nop(), Config{RemoteStore: "dynamo"}, metrics)
	var got *StoreBootstrapError
	if !errors.As(err, &got) {
		t.Fatalf("expected StoreBootstrapError, got=%T (%v)", err, err)
	}
	if got.Code != StoreBootstrapErrorInvalidMode {
		t.Fatalf("code: want=%q got=%q", StoreBootstrapErrorInvalidMode, got.Code)
	}
}

func TestResolveRemoteStoreRedisMissingAddr(t *testing.T) {
	_, err := resolveRemoteStore(logger.Nop(), Config{RemoteStore: RemoteStoreRedis}, nil)
	if code := storeBootstrapErrorCode(err); code != StoreBootstrapErrorMissingRedisAddr {
		t.Fatalf("code: want=%q got=%q", StoreBootstrapErrorMissingRedisAddr, code)
	}
}

func TestResolveRemoteStoreRedisConnectFailure(t *testing.T) {
	orig := newRedisStore
	t.Cleanup(func() { newRedisStore = orig })
	var gotCfg redis.Config
	newRedisStore = func(_ *logger.Logger, cfg redis.Config) (*redis.Store, error) {
		gotCfg = cfg
		return nil, errors.New("dial tcp: connection refused")
	}

	_, err := resolveRemoteStore(logger.Nop(), Config{
		RemoteStore: RemoteStoreRedis,
		RedisAddr:   "localhost:6390",
		RedisPrefix: "sot-test",
	}, nil)
	if code := storeBootstrapErrorCode(err); code != StoreBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", StoreBootstrapErrorConnectFailed, code)
	}
	if gotCfg.Addr != "localhost:6390" || gotCfg.Prefix != "sot-test" {
		t.Fatalf("unexpected redis config: %+v", gotCfg)
	}
}

func TestResolveRemoteStorePostgresMigrates(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(*logger.Logger) (*gorm.DB, error) {
		return db.OpenSQLite(nil, ":memory:")
	}

	rs, err := resolveRemoteStore(logger.Nop(), Config{RemoteStore: RemoteStorePostgres}, observability.NewMetrics())
	if err != nil {
		t.Fatalf("resolveRemoteStore(postgres): %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })
	if rs.DB == nil {
		t.Fatalf("expected DB to be set in postgres mode")
	}
	if _, ok := rs.Remote.(*repos.RemoteStore); !ok {
		t.Fatalf("expected *repos.RemoteStore, got=%T", rs.Remote)
	}
	if !rs.DB.Migrator().HasTable("feedback") {
		t.Fatalf("expected feedback table after migration")
	}
}

func TestResolveRemoteStorePostgresConnectFailure(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(*logger.Logger) (*gorm.DB, error) { return nil, errors.New("no route to host") }

	_, err := resolveRemoteStore(logger.Nop(), Config{RemoteStore: RemoteStorePostgres}, nil)
	if code := storeBootstrapErrorCode(err); code != StoreBootstrapErrorConnectFailed {
		t.Fatalf("code: want=%q got=%q", StoreBootstrapErrorConnectFailed, code)
	}
}

func TestNewWithConfigServesHealthcheck(t *testing.T) {
	cfg := Config{
		Port:           "0",
		RemoteStore:    RemoteStoreMemory,
		LocalCachePath: t.TempDir() + "/cache.db",
	}
	a, err := NewWithConfig(t.Context(), logger.Nop(), cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)

	if a.Repos.Feedback == nil {
		t.Fatalf("expected feedback to fall back to the local database")
	}

	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthcheck: want=200 got=%d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cache/curricula", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("cache list: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
}
