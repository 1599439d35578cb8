package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/edu-offline/internal/logger"
)

type localStore struct {
	db          *DB
	collections *collectionRepository
	queue       *pendingQueue
	responses   *responseCache
	logger      *logger.Logger
}

// NewLocalStore builds a [LocalStore] over an opened and migrated database.
func NewLocalStore(db *DB, logger *logger.Logger) LocalStore {
	return &localStore{
		db:          db,
		collections: newCollectionRepository(db.DB, logger),
		queue:       newPendingQueue(db.DB, logger),
		responses:   newResponseCache(db.DB, logger),
		logger:      logger,
	}
}

func (s *localStore) Collections() CollectionRepository { return s.collections }
func (s *localStore) Queue() PendingQueue               { return s.queue }
func (s *localStore) Responses() ResponseCache          { return s.responses }

func (s *localStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.withTx(ctx, func(sqlTx *sql.Tx) error {
		return fn(&localTx{
			collections: newCollectionRepository(sqlTx, s.logger),
			queue:       newPendingQueue(sqlTx, s.logger),
		})
	})
}

func (s *localStore) Close() error {
	return s.db.Close()
}

type localTx struct {
	collections *collectionRepository
	queue       *pendingQueue
}

func (t *localTx) Collections() CollectionRepository { return t.collections }
func (t *localTx) Queue() PendingQueue               { return t.queue }
