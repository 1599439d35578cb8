package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/logger"
)

// ClientStorages groups the local store and its domain-level view into a
// single value passed to the service layer.
type ClientStorages struct {
	// Local is the raw structured store: collections, pending queue and the
	// HTTP response cache of the interception layer.
	Local LocalStore

	// Offline maps courses, materials, progress and downloads onto Local.
	Offline OfflineStorage
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, creating the
// file if needed, applies pending migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("dsn", cfg.DB.DSN).Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	local := NewLocalStore(db, logger)
	return &ClientStorages{
		Local:   local,
		Offline: NewOfflineStorage(local, logger),
	}, nil
}

// NewUnavailableStorages returns storages whose every operation fails with
// [ErrStoreUnavailable]. It is used when [NewClientStorages] fails so that
// the application keeps running online-only.
func NewUnavailableStorages(cause error, logger *logger.Logger) *ClientStorages {
	local := NewUnavailableStore(cause)
	return &ClientStorages{
		Local:   local,
		Offline: NewOfflineStorage(local, logger),
	}
}

// OpenClientStorages is [NewClientStorages] that never fails: an open error
// is logged and the unavailable storages are returned instead.
func OpenClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) *ClientStorages {
	storages, err := NewClientStorages(ctx, cfg, logger)
	if err != nil {
		logger.Warn().Err(err).
			Str("func", "OpenClientStorages").
			Msg("local store unavailable, offline data disabled")
		return NewUnavailableStorages(err, logger)
	}
	return storages
}

// Close releases the underlying database.
func (s *ClientStorages) Close() error {
	return s.Local.Close()
}
