package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/edu-offline/models"
)

// unavailableStore stands in for a store that failed to open. Every
// operation fails with [ErrStoreUnavailable] wrapping the open error.
type unavailableStore struct {
	err error
}

// NewUnavailableStore returns a [LocalStore] whose operations all fail with
// [ErrStoreUnavailable]. cause is the error that prevented opening the store.
func NewUnavailableStore(cause error) LocalStore {
	if cause == nil {
		return &unavailableStore{err: ErrStoreUnavailable}
	}
	return &unavailableStore{err: fmt.Errorf("%w: %w", ErrStoreUnavailable, cause)}
}

func (u *unavailableStore) Collections() CollectionRepository { return u }
func (u *unavailableStore) Queue() PendingQueue               { return unavailableQueue{u.err} }
func (u *unavailableStore) Responses() ResponseCache          { return unavailableResponses{u.err} }

func (u *unavailableStore) InTx(context.Context, func(tx Tx) error) error { return u.err }
func (u *unavailableStore) Close() error                                 { return nil }

func (u *unavailableStore) Put(context.Context, Collection, models.Record) error       { return u.err }
func (u *unavailableStore) PutMany(context.Context, Collection, []models.Record) error { return u.err }
func (u *unavailableStore) Get(context.Context, Collection, string) (models.Record, error) {
	return models.Record{}, u.err
}
func (u *unavailableStore) GetAll(context.Context, Collection) ([]models.Record, error) {
	return nil, u.err
}
func (u *unavailableStore) GetByScope(context.Context, Collection, string) ([]models.Record, error) {
	return nil, u.err
}
func (u *unavailableStore) Delete(context.Context, Collection, string) error        { return u.err }
func (u *unavailableStore) DeleteByScope(context.Context, Collection, string) error { return u.err }
func (u *unavailableStore) Count(context.Context, Collection) (int, error)          { return 0, u.err }
func (u *unavailableStore) Clear(context.Context, Collection) error                 { return u.err }

type unavailableQueue struct{ err error }

func (q unavailableQueue) Enqueue(context.Context, models.Mutation) (int64, error) { return 0, q.err }
func (q unavailableQueue) List(context.Context) ([]models.PendingMutation, error) {
	return nil, q.err
}
func (q unavailableQueue) DeleteUpTo(context.Context, int64) error { return q.err }
func (q unavailableQueue) Count(context.Context) (int, error)      { return 0, q.err }
func (q unavailableQueue) Clear(context.Context) error             { return q.err }

type unavailableResponses struct{ err error }

func (r unavailableResponses) Put(context.Context, models.CachedResponse) error { return r.err }
func (r unavailableResponses) Match(context.Context, string, string) (models.CachedResponse, error) {
	return models.CachedResponse{}, r.err
}
func (r unavailableResponses) MatchAny(context.Context, string) (models.CachedResponse, error) {
	return models.CachedResponse{}, r.err
}
func (r unavailableResponses) Namespaces(context.Context) ([]string, error) { return nil, r.err }
func (r unavailableResponses) DeleteNamespace(context.Context, string) error {
	return r.err
}
