// Package constructioncms wires the storage core together: it picks the
// backend adapter from configuration and hands out a process-wide
// storage.Store.
package constructioncms

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"construction-cms/internal/core/config"
	"construction-cms/internal/core/database"
	"construction-cms/internal/core/logger"
	"construction-cms/internal/core/objectstore"
	"construction-cms/internal/storage"
	"construction-cms/internal/storage/gormstore"
	"construction-cms/internal/storage/s3store"
)

// Open builds a Store for the configured mode. It validates the mode's
// parameters first and never falls back to the other backend.
func Open(cfg *config.Storage, log *zap.Logger) (storage.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case config.ModeRelational:
		db, err := database.NewGorm(database.Opts{
			Driver:             cfg.DB.Driver,
			DSN:                cfg.DB.DSN,
			MaxOpenConns:       cfg.DB.MaxOpenConns,
			MaxIdleConns:       cfg.DB.MaxIdleConns,
			ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
			LogLevel:           cfg.DB.LogLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return gormstore.New(db, log)
	case config.ModeDocument:
		client, err := objectstore.New(objectstore.Opts{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Endpoint:  cfg.S3.Endpoint,
			UseSSL:    cfg.S3.UseSSL,
			RateRPS:   cfg.S3.RateRPS,
		})
		if err != nil {
			return nil, fmt.Errorf("open object store: %w", err)
		}
		var opts []s3store.Option
		if cfg.S3.KeyPrefix != "" {
			opts = append(opts, s3store.WithKeyPrefix(cfg.S3.KeyPrefix))
		}
		return s3store.New(client, log, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown storage.mode %q", storage.ErrBadConfig, cfg.Mode)
	}
}

// NewLogger builds the process logger from config, adding a rotated
// file sink when one is configured.
func NewLogger(lc config.Log) (*zap.Logger, func()) {
	if lc.File != "" {
		return logger.NewWithRotate(lc.Level, lc.JSON, lc.File, lc.MaxSizeMB, lc.MaxBackups, lc.MaxAgeDays, lc.Compress)
	}
	return logger.New(lc.Level, lc.JSON)
}

var (
	storeMu    sync.Mutex
	active     storage.Store
	activeSync func()
)

// GetStorage returns the process-wide Store, configuring it on first
// call from CONFIG_PATH and the environment. Every later call returns
// the same instance without re-reading configuration. Callers share it
// freely; it holds no request state.
func GetStorage() (storage.Store, error) {
	storeMu.Lock()
	defer storeMu.Unlock()
	if active != nil {
		return active, nil
	}
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	log, cleanup := NewLogger(cfg.Log)
	st, err := Open(&cfg.Storage, log)
	if err != nil {
		cleanup()
		return nil, err
	}
	active = st
	activeSync = cleanup
	return active, nil
}

// ResetStorage closes and drops the singleton so the next GetStorage
// call reconfigures from current environment state. Intended for tests.
func ResetStorage() {
	storeMu.Lock()
	defer storeMu.Unlock()
	if active != nil {
		_ = active.Close()
		active = nil
	}
	if activeSync != nil {
		activeSync()
		activeSync = nil
	}
}
