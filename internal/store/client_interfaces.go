package store

import (
	"context"

	"github.com/MKhiriev/edu-offline/models"
)

// CollectionRepository is the low-level access to the named snapshot
// collections. Every call is one statement; use [LocalStore.InTx] to group
// several calls into one atomic batch.
type CollectionRepository interface {
	Put(ctx context.Context, c Collection, record models.Record) error
	PutMany(ctx context.Context, c Collection, records []models.Record) error
	Get(ctx context.Context, c Collection, key string) (models.Record, error)
	GetAll(ctx context.Context, c Collection) ([]models.Record, error)
	GetByScope(ctx context.Context, c Collection, scope string) ([]models.Record, error)
	Delete(ctx context.Context, c Collection, key string) error
	DeleteByScope(ctx context.Context, c Collection, scope string) error
	Count(ctx context.Context, c Collection) (int, error)
	Clear(ctx context.Context, c Collection) error
}

// PendingQueue is the FIFO of mutations waiting for server acknowledgement.
type PendingQueue interface {
	// Enqueue appends m and returns its queue id.
	Enqueue(ctx context.Context, m models.Mutation) (int64, error)
	// List returns every entry in ascending id order.
	List(ctx context.Context) ([]models.PendingMutation, error)
	// DeleteUpTo removes every entry with id <= id.
	DeleteUpTo(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// ResponseCache stores HTTP responses in generation-tagged namespaces.
type ResponseCache interface {
	Put(ctx context.Context, resp models.CachedResponse) error
	// Match returns the response stored under url in namespace.
	Match(ctx context.Context, namespace, url string) (models.CachedResponse, error)
	// MatchAny returns the newest response stored under url in any namespace.
	MatchAny(ctx context.Context, url string) (models.CachedResponse, error)
	Namespaces(ctx context.Context) ([]string, error)
	DeleteNamespace(ctx context.Context, namespace string) error
}

// Tx is the transactional view of the store handed to [LocalStore.InTx].
type Tx interface {
	Collections() CollectionRepository
	Queue() PendingQueue
}

// LocalStore is the on-device structured store.
type LocalStore interface {
	Tx
	Responses() ResponseCache
	// InTx runs fn in one transaction. The batch is committed when fn
	// returns nil and rolled back otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// OfflineStorage is the domain-level view of the local store used by the
// download manager, the sync orchestrator and the read services.
type OfflineStorage interface {
	SaveCourseSnapshot(ctx context.Context, snapshot models.CourseSnapshot, entry models.DownloadEntry) error
	GetCourseOffline(ctx context.Context, courseID string) (models.CourseSnapshot, error)
	GetTopicsOffline(ctx context.Context, courseID string) ([]models.Topic, error)
	GetTopicContentOffline(ctx context.Context, topicID string) (models.TopicContent, error)
	RemoveCourseOffline(ctx context.Context, courseID string) error

	SaveMaterialOffline(ctx context.Context, material models.Material, entry models.DownloadEntry) error
	GetMaterialOffline(ctx context.Context, materialID string) (models.Material, error)
	RemoveMaterialOffline(ctx context.Context, materialID string) error

	SaveProgress(ctx context.Context, records ...models.ProgressRecord) error
	SaveProvisionalProgress(ctx context.Context, record models.ProgressRecord, m models.Mutation) (int64, error)
	GetProgress(ctx context.Context, topicID string) (models.ProgressRecord, error)
	GetProgressForCourse(ctx context.Context, courseID string) ([]models.ProgressRecord, error)

	PendingMutations(ctx context.Context) ([]models.PendingMutation, error)
	PendingCount(ctx context.Context) (int, error)
	// AcknowledgeUpTo removes queue entries with id <= lastID and stores the
	// server-confirmed records in the same transaction.
	AcknowledgeUpTo(ctx context.Context, lastID int64, confirmed []models.ProgressRecord) error

	SaveRevisions(ctx context.Context, revisions ...models.Revision) error
	GetRevisions(ctx context.Context) ([]models.Revision, error)
	SetUserData(ctx context.Context, key string, value any) error
	GetUserData(ctx context.Context, key string, dst any) error

	GetDownloads(ctx context.Context) ([]models.DownloadEntry, error)
	IsDownloaded(ctx context.Context, t models.DownloadType, entityID string) (bool, error)
	Stats(ctx context.Context) (models.StorageStats, error)
	ClearAll(ctx context.Context) error
}
