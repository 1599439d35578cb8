// Package service implements the offline-first use cases of the client: the
// download manager, online-first reads with local fallback, progress writes
// that queue while offline, and the sync orchestrator draining that queue.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/edu-offline/models"
)

// DownloadManager makes courses and materials available offline.
type DownloadManager interface {
	// DownloadCourse fetches the course, its topics and every topic content and
	// stores them with a registry entry in one batch. A topic whose content
	// cannot be fetched is skipped and listed in the result. Downloading an
	// already downloaded course replaces the stored copy.
	DownloadCourse(ctx context.Context, courseID string) (models.DownloadResult, error)

	// RemoveCourse deletes the course snapshot, every child snapshot scoped to
	// it and its registry entry. Removing a course that is not stored is a
	// no-op.
	RemoveCourse(ctx context.Context, courseID string) error

	// DownloadMaterial fetches and stores a material with its registry entry.
	DownloadMaterial(ctx context.Context, materialID string) (models.DownloadEntry, error)

	// RemoveMaterial deletes a stored material. Missing materials are a no-op.
	RemoveMaterial(ctx context.Context, materialID string) error

	// GetCourseOffline returns the stored snapshot of a downloaded course.
	GetCourseOffline(ctx context.Context, courseID string) (models.CourseSnapshot, error)

	IsDownloaded(ctx context.Context, t models.DownloadType, entityID string) (bool, error)
	ListDownloads(ctx context.Context) ([]models.DownloadEntry, error)
	Stats(ctx context.Context) (models.StorageStats, error)

	// ClearAll removes every snapshot, registry entry and queued mutation.
	ClearAll(ctx context.Context) error
}

// CourseService reads course data from the network, falling back to the
// local store when the network is unavailable.
type CourseService interface {
	GetCourse(ctx context.Context, courseID string) (models.ReadResult[models.CourseDetail], error)
	GetTopics(ctx context.Context, courseID string) (models.ReadResult[[]models.Topic], error)
	GetTopicContent(ctx context.Context, courseID, topicID string) (models.ReadResult[json.RawMessage], error)
	GetMaterial(ctx context.Context, materialID string) (models.ReadResult[models.Material], error)

	// GetRevisions also refreshes the local copy on every successful read.
	GetRevisions(ctx context.Context) (models.ReadResult[[]models.Revision], error)
}

// ProgressService records and reads learner progress.
type ProgressService interface {
	// UpdateProgress sends the update to the server when online and mirrors
	// the confirmed record locally. When offline, or when the network fails,
	// it stores a provisional record and queues the update for the sync
	// orchestrator. The returned record is provisional in that case.
	UpdateProgress(ctx context.Context, topicID string, update models.ProgressUpdate) (models.ProgressRecord, error)

	// GetCourseProgress reads the course progress from the network and caches
	// it, or returns the local records when offline.
	GetCourseProgress(ctx context.Context, courseID string) (models.ReadResult[[]models.ProgressRecord], error)

	// GetTopicProgress returns the local record of a topic.
	GetTopicProgress(ctx context.Context, topicID string) (models.ProgressRecord, error)
}

// SyncOrchestrator drains the pending mutation queue.
type SyncOrchestrator interface {
	// Drain applies every queued mutation in enqueue order. The queue is
	// emptied only when all of them succeeded; on the first failure the run
	// aborts with [ErrDrainAborted] and the queue is left intact.
	Drain(ctx context.Context) (models.DrainReport, error)

	// PendingCount returns the number of queued mutations.
	PendingCount(ctx context.Context) (int, error)

	// LastSync returns when a drain last emptied the queue, or the zero time
	// if none has yet.
	LastSync(ctx context.Context) (time.Time, error)
}

// ClientSyncJob triggers the orchestrator on reconnect, on start when already
// online, and optionally on a fixed interval.
type ClientSyncJob interface {
	// Start launches the background goroutine. Any running job is stopped
	// first.
	Start(ctx context.Context)

	// Trigger requests a drain without waiting for it.
	Trigger()

	// Stop signals the goroutine to exit and blocks until it has terminated.
	Stop()
}
