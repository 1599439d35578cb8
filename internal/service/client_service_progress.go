package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

// writeGate serializes progress writes with the sync drain, so a drain never
// reads the queue while an update is between its remote call and its local
// write.
type writeGate struct {
	sync.Mutex
}

// lockedDrainer drains the pending queue for a caller holding the write gate.
type lockedDrainer interface {
	drainLocked(ctx context.Context) (models.DrainReport, error)
}

type progressService struct {
	api       adapter.RemoteAPI
	offline   store.OfflineStorage
	conn      Connectivity
	validator validators.Validator
	gate      *writeGate
	drainer   lockedDrainer
	logger    *logger.Logger
	now       func() time.Time
}

func newProgressService(api adapter.RemoteAPI, offline store.OfflineStorage, conn Connectivity, validator validators.Validator, gate *writeGate, drainer lockedDrainer, logger *logger.Logger) *progressService {
	return &progressService{
		api:       api,
		offline:   offline,
		conn:      conn,
		validator: validator,
		gate:      gate,
		drainer:   drainer,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *progressService) UpdateProgress(ctx context.Context, topicID string, update models.ProgressUpdate) (models.ProgressRecord, error) {
	if err := validateID(ctx, s.validator, topicID); err != nil {
		return models.ProgressRecord{}, err
	}
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.ProgressRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	s.gate.Lock()
	defer s.gate.Unlock()

	// a started write finishes even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	if s.conn.Online() && s.queueFlushed(ctx) {
		rec, err := s.api.UpdateProgress(ctx, topicID, update)
		if err == nil {
			if err := s.offline.SaveProgress(ctx, rec); err != nil {
				s.logger.Warn().Err(err).
					Str("func", "progressService.UpdateProgress").
					Str("topic_id", topicID).
					Msg("failed to mirror confirmed progress")
			}
			return rec, nil
		}
		if !isNetworkFailure(err) {
			return models.ProgressRecord{}, mapAdapterError(err)
		}

		s.logger.Warn().Err(err).
			Str("func", "progressService.UpdateProgress").
			Str("topic_id", topicID).
			Msg("network failed, queueing progress update")
	}

	rec := update.Record(topicID, s.now())
	mutation := models.ProgressMutation{TopicID: topicID, Data: update}

	id, err := s.offline.SaveProvisionalProgress(ctx, rec, mutation)
	if err != nil {
		return models.ProgressRecord{}, mapStoreError(err)
	}

	s.logger.Info().
		Str("func", "progressService.UpdateProgress").
		Str("topic_id", topicID).
		Int64("queue_id", id).
		Msg("progress update queued")
	return rec, nil
}

// queueFlushed reports whether no older mutation is waiting, draining the
// queue first when there is one. An update must never reach the server ahead
// of a queued one, so when the drain fails the caller queues behind it.
func (s *progressService) queueFlushed(ctx context.Context) bool {
	pending, err := s.offline.PendingCount(ctx)
	if err != nil || pending == 0 {
		// no readable queue means nothing can be replayed over this write
		return true
	}

	if _, err := s.drainer.drainLocked(ctx); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "progressService.queueFlushed").
			Int("pending", pending).
			Msg("pending mutations not synced, queueing update behind them")
		return false
	}
	return true
}

// GetCourseProgress refreshes the local copy from the network. A topic whose
// local record is still provisional keeps it until the drain confirms it.
func (s *progressService) GetCourseProgress(ctx context.Context, courseID string) (models.ReadResult[[]models.ProgressRecord], error) {
	if err := validateID(ctx, s.validator, courseID); err != nil {
		return models.ReadResult[[]models.ProgressRecord]{}, err
	}

	return networkFirst(ctx, s.conn, readPath[[]models.ProgressRecord]{
		fetch: func(ctx context.Context) ([]models.ProgressRecord, error) {
			return s.api.GetCourseProgress(ctx, courseID)
		},
		local: func(ctx context.Context) ([]models.ProgressRecord, error) {
			return s.offline.GetProgressForCourse(ctx, courseID)
		},
		mirror: func(ctx context.Context, records []models.ProgressRecord) {
			s.mirrorCourseProgress(ctx, courseID, records)
		},
	})
}

func (s *progressService) mirrorCourseProgress(ctx context.Context, courseID string, records []models.ProgressRecord) {
	s.gate.Lock()
	defer s.gate.Unlock()

	confirmed := make([]models.ProgressRecord, 0, len(records))
	for _, rec := range records {
		if rec.CourseID == "" {
			rec.CourseID = courseID
		}
		if rec.TopicID != "" {
			local, err := s.offline.GetProgress(ctx, rec.TopicID)
			if err == nil && local.Provisional() {
				continue
			}
		}
		rec.OfflineAt = nil
		confirmed = append(confirmed, rec)
	}

	if err := s.offline.SaveProgress(ctx, confirmed...); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "progressService.GetCourseProgress").
			Str("course_id", courseID).
			Msg("failed to mirror course progress")
	}
}

func (s *progressService) GetTopicProgress(ctx context.Context, topicID string) (models.ProgressRecord, error) {
	if err := validateID(ctx, s.validator, topicID); err != nil {
		return models.ProgressRecord{}, err
	}

	rec, err := s.offline.GetProgress(ctx, topicID)
	if err != nil {
		return models.ProgressRecord{}, mapStoreError(err)
	}
	return rec, nil
}
