package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

// lastSyncKey is the user data entry holding the time of the last complete
// drain.
const lastSyncKey = "lastSyncAt"

type syncOrchestrator struct {
	api       adapter.RemoteAPI
	offline   store.OfflineStorage
	validator validators.Validator
	gate      *writeGate
	logger    *logger.Logger
}

func newSyncOrchestrator(api adapter.RemoteAPI, offline store.OfflineStorage, validator validators.Validator, gate *writeGate, logger *logger.Logger) *syncOrchestrator {
	return &syncOrchestrator{
		api:       api,
		offline:   offline,
		validator: validator,
		gate:      gate,
		logger:    logger,
	}
}

// Drain runs under the write gate, so concurrent calls run one after another
// and the second one finds the queue already empty.
func (s *syncOrchestrator) Drain(ctx context.Context) (models.DrainReport, error) {
	s.gate.Lock()
	defer s.gate.Unlock()

	return s.drainLocked(context.WithoutCancel(ctx))
}

// drainLocked is Drain for a caller already holding the write gate.
func (s *syncOrchestrator) drainLocked(ctx context.Context) (models.DrainReport, error) {
	entries, err := s.offline.PendingMutations(ctx)
	if err != nil {
		return models.DrainReport{}, mapStoreError(err)
	}
	if len(entries) == 0 {
		return models.DrainReport{}, nil
	}

	s.logger.Info().
		Str("func", "syncOrchestrator.drainLocked").
		Int("pending", len(entries)).
		Msg("draining pending mutations")

	applier := &remoteApplier{api: s.api, validator: s.validator}
	for _, entry := range entries {
		if err := entry.Mutation.Accept(ctx, applier); err != nil {
			s.logger.Err(err).
				Str("func", "syncOrchestrator.drainLocked").
				Int64("queue_id", entry.ID).
				Str("kind", string(entry.Mutation.Kind())).
				Str("target_id", entry.Mutation.TargetID()).
				Msg("mutation failed, drain aborted")

			report := models.DrainReport{Remaining: len(entries), FailedID: entry.ID}
			return report, fmt.Errorf("%w: entry %d: %w", ErrDrainAborted, entry.ID, mapAdapterError(err))
		}
	}

	last := entries[len(entries)-1].ID
	if err := s.offline.AcknowledgeUpTo(ctx, last, applier.confirmed); err != nil {
		return models.DrainReport{Remaining: len(entries)}, fmt.Errorf("failed to acknowledge drained mutations: %w", mapStoreError(err))
	}

	if err := s.offline.SetUserData(ctx, lastSyncKey, time.Now().UTC()); err != nil {
		s.logger.Warn().Err(err).Str("func", "syncOrchestrator.drainLocked").Msg("failed to record last sync time")
	}

	remaining, err := s.offline.PendingCount(ctx)
	if err != nil {
		return models.DrainReport{Drained: len(entries)}, mapStoreError(err)
	}

	s.logger.Info().
		Str("func", "syncOrchestrator.drainLocked").
		Int("drained", len(entries)).
		Msg("pending mutations synced")
	return models.DrainReport{Drained: len(entries), Remaining: remaining}, nil
}

func (s *syncOrchestrator) PendingCount(ctx context.Context) (int, error) {
	n, err := s.offline.PendingCount(ctx)
	if err != nil {
		return 0, mapStoreError(err)
	}
	return n, nil
}

func (s *syncOrchestrator) LastSync(ctx context.Context) (time.Time, error) {
	var at time.Time
	err := s.offline.GetUserData(ctx, lastSyncKey, &at)
	if errors.Is(err, store.ErrRecordNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, mapStoreError(err)
	}
	return at, nil
}

// remoteApplier sends mutations of one drain run to the server and collects
// the confirmed records.
type remoteApplier struct {
	api       adapter.RemoteAPI
	validator validators.Validator
	confirmed []models.ProgressRecord
}

func (a *remoteApplier) ApplyProgress(ctx context.Context, m models.ProgressMutation) error {
	if err := a.validator.Validate(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	rec, err := a.api.UpdateProgress(ctx, m.TopicID, m.Data)
	if err != nil {
		return err
	}
	if rec.CourseID == "" {
		rec.CourseID = m.Data.CourseID
	}
	a.confirmed = append(a.confirmed, rec)
	return nil
}
