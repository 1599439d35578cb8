package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

// topicFetchConcurrency bounds the topic content requests of one download.
const topicFetchConcurrency = 4

type downloadManager struct {
	api       adapter.RemoteAPI
	offline   store.OfflineStorage
	validator validators.Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewDownloadManager(api adapter.RemoteAPI, offline store.OfflineStorage, validator validators.Validator, logger *logger.Logger) DownloadManager {
	return &downloadManager{
		api:       api,
		offline:   offline,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (m *downloadManager) DownloadCourse(ctx context.Context, courseID string) (models.DownloadResult, error) {
	if err := validateID(ctx, m.validator, courseID); err != nil {
		return models.DownloadResult{}, err
	}

	// a started download is completed even if the caller goes away
	ctx = context.WithoutCancel(ctx)

	detail, err := m.api.GetCourse(ctx, courseID)
	if err != nil {
		return models.DownloadResult{}, fmt.Errorf("failed to fetch course %s: %w", courseID, mapAdapterError(err))
	}
	if detail.Course.ID == "" {
		detail.Course.ID = courseID
	}

	contents, skipped := m.fetchContents(ctx, courseID, detail.Topics)

	snapshot := models.CourseSnapshot{
		Course:   detail.Course,
		Topics:   detail.Topics,
		Contents: contents,
	}
	if snapshot.Topics == nil {
		snapshot.Topics = []models.Topic{}
	}

	entry, err := m.entry(models.DownloadCourse, courseID, detail.Course.Title, snapshot)
	if err != nil {
		return models.DownloadResult{}, err
	}

	if err := m.offline.SaveCourseSnapshot(ctx, snapshot, entry); err != nil {
		return models.DownloadResult{}, mapStoreError(err)
	}

	m.logger.Info().
		Str("func", "downloadManager.DownloadCourse").
		Str("course_id", courseID).
		Int("topics", len(contents)).
		Int("skipped", len(skipped)).
		Int64("size", entry.SizeBytes).
		Msg("course downloaded")

	return models.DownloadResult{
		Entry:         entry,
		TopicCount:    len(contents),
		SkippedTopics: skipped,
	}, nil
}

// fetchContents requests every topic content with bounded concurrency. The
// result keeps topic order; topics that failed are returned as skipped.
func (m *downloadManager) fetchContents(ctx context.Context, courseID string, topics []models.Topic) ([]models.TopicContent, []string) {
	fetched := make([]*models.TopicContent, len(topics))

	var g errgroup.Group
	g.SetLimit(topicFetchConcurrency)
	for i, topic := range topics {
		g.Go(func() error {
			raw, err := m.api.GetTopicContent(ctx, courseID, topic.ID)
			if err != nil {
				m.logger.Warn().Err(err).
					Str("func", "downloadManager.fetchContents").
					Str("course_id", courseID).
					Str("topic_id", topic.ID).
					Msg("skipping topic content")
				return nil
			}
			fetched[i] = &models.TopicContent{
				TopicID:  topic.ID,
				CourseID: courseID,
				Content:  raw,
			}
			return nil
		})
	}
	_ = g.Wait()

	contents := make([]models.TopicContent, 0, len(topics))
	var skipped []string
	for i, c := range fetched {
		if c == nil {
			skipped = append(skipped, topics[i].ID)
			continue
		}
		contents = append(contents, *c)
	}
	return contents, skipped
}

func (m *downloadManager) RemoveCourse(ctx context.Context, courseID string) error {
	if err := validateID(ctx, m.validator, courseID); err != nil {
		return err
	}
	if err := m.offline.RemoveCourseOffline(ctx, courseID); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (m *downloadManager) DownloadMaterial(ctx context.Context, materialID string) (models.DownloadEntry, error) {
	if err := validateID(ctx, m.validator, materialID); err != nil {
		return models.DownloadEntry{}, err
	}

	ctx = context.WithoutCancel(ctx)

	material, err := m.api.GetMaterial(ctx, materialID)
	if err != nil {
		return models.DownloadEntry{}, fmt.Errorf("failed to fetch material %s: %w", materialID, mapAdapterError(err))
	}
	if material.ID == "" {
		material.ID = materialID
	}

	entry, err := m.entry(models.DownloadMaterial, materialID, material.Title, material)
	if err != nil {
		return models.DownloadEntry{}, err
	}

	if err := m.offline.SaveMaterialOffline(ctx, material, entry); err != nil {
		return models.DownloadEntry{}, mapStoreError(err)
	}
	return entry, nil
}

func (m *downloadManager) RemoveMaterial(ctx context.Context, materialID string) error {
	if err := validateID(ctx, m.validator, materialID); err != nil {
		return err
	}
	if err := m.offline.RemoveMaterialOffline(ctx, materialID); err != nil {
		return mapStoreError(err)
	}
	return nil
}

func (m *downloadManager) GetCourseOffline(ctx context.Context, courseID string) (models.CourseSnapshot, error) {
	if err := validateID(ctx, m.validator, courseID); err != nil {
		return models.CourseSnapshot{}, err
	}

	snapshot, err := m.offline.GetCourseOffline(ctx, courseID)
	if err != nil {
		return models.CourseSnapshot{}, mapStoreError(err)
	}
	return snapshot, nil
}

func (m *downloadManager) IsDownloaded(ctx context.Context, t models.DownloadType, entityID string) (bool, error) {
	ok, err := m.offline.IsDownloaded(ctx, t, entityID)
	if err != nil {
		return false, mapStoreError(err)
	}
	return ok, nil
}

func (m *downloadManager) ListDownloads(ctx context.Context) ([]models.DownloadEntry, error) {
	entries, err := m.offline.GetDownloads(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return entries, nil
}

func (m *downloadManager) Stats(ctx context.Context) (models.StorageStats, error) {
	stats, err := m.offline.Stats(ctx)
	if err != nil {
		return models.StorageStats{}, mapStoreError(err)
	}
	return stats, nil
}

func (m *downloadManager) ClearAll(ctx context.Context) error {
	if err := m.offline.ClearAll(ctx); err != nil {
		return mapStoreError(err)
	}
	m.logger.Info().Str("func", "downloadManager.ClearAll").Msg("offline data cleared")
	return nil
}

// entry builds the registry entry of an entity. The size is the length of
// the JSON encoding of what was stored.
func (m *downloadManager) entry(t models.DownloadType, entityID, title string, stored any) (models.DownloadEntry, error) {
	payload, err := json.Marshal(stored)
	if err != nil {
		return models.DownloadEntry{}, fmt.Errorf("failed to measure %s %s: %w", t, entityID, err)
	}

	return models.DownloadEntry{
		ID:           models.DownloadID(t, entityID),
		Type:         t,
		EntityID:     entityID,
		Title:        title,
		DownloadedAt: m.now(),
		SizeBytes:    int64(len(payload)),
	}, nil
}
