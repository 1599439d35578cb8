// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

const bytesPerMB = 1024 * 1024

// offlineStorage is the default implementation of [OfflineStorage].
//
// It maps domain entities onto the generic collections of a [LocalStore].
// Operations touching more than one collection run in a single transaction,
// so a course snapshot and its download registry entry are always written
// and removed together.
type offlineStorage struct {
	store  LocalStore
	logger *logger.Logger
	now    func() time.Time
}

// NewOfflineStorage constructs an [OfflineStorage] over store.
func NewOfflineStorage(store LocalStore, logger *logger.Logger) OfflineStorage {
	return &offlineStorage{
		store:  store,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SaveCourseSnapshot replaces everything stored for the course with snapshot
// and records entry in the download registry. Topic content stored by an
// earlier download of the same course is dropped first.
func (s *offlineStorage) SaveCourseSnapshot(ctx context.Context, snapshot models.CourseSnapshot, entry models.DownloadEntry) error {
	courseID := snapshot.Course.ID
	now := s.now()

	course := snapshot.Course
	course.OfflineAt = &now
	courseRec, err := models.NewRecord(courseID, "", course)
	if err != nil {
		return fmt.Errorf("failed to encode course %s: %w", courseID, err)
	}
	topicsRec, err := models.NewRecord(courseID, courseID, snapshot.Topics)
	if err != nil {
		return fmt.Errorf("failed to encode topics of course %s: %w", courseID, err)
	}

	contentRecs := make([]models.Record, 0, len(snapshot.Contents))
	for _, content := range snapshot.Contents {
		content.CourseID = courseID
		if content.OfflineAt.IsZero() {
			content.OfflineAt = now
		}
		rec, err := models.NewRecord(content.TopicID, courseID, content)
		if err != nil {
			return fmt.Errorf("failed to encode content of topic %s: %w", content.TopicID, err)
		}
		contentRecs = append(contentRecs, rec)
	}

	entryRec, err := models.NewRecord(entry.ID, string(entry.Type), entry)
	if err != nil {
		return fmt.Errorf("failed to encode download entry %s: %w", entry.ID, err)
	}

	err = s.store.InTx(ctx, func(tx Tx) error {
		c := tx.Collections()
		if err := c.Put(ctx, Courses, courseRec); err != nil {
			return err
		}
		if err := c.Put(ctx, CourseTopics, topicsRec); err != nil {
			return err
		}
		if err := c.DeleteByScope(ctx, TopicContents, courseID); err != nil {
			return err
		}
		if err := c.PutMany(ctx, TopicContents, contentRecs); err != nil {
			return err
		}
		return c.Put(ctx, Downloads, entryRec)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "offlineStorage.SaveCourseSnapshot").
			Str("course_id", courseID).
			Msg("failed to save course snapshot")
		return fmt.Errorf("failed to save course %s offline: %w", courseID, err)
	}
	return nil
}

func (s *offlineStorage) GetCourseOffline(ctx context.Context, courseID string) (models.CourseSnapshot, error) {
	var snapshot models.CourseSnapshot

	c := s.store.Collections()
	rec, err := c.Get(ctx, Courses, courseID)
	if err != nil {
		return models.CourseSnapshot{}, err
	}
	if err := rec.Decode(&snapshot.Course); err != nil {
		return models.CourseSnapshot{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}

	snapshot.Topics, err = s.GetTopicsOffline(ctx, courseID)
	if err != nil && !isNotFound(err) {
		return models.CourseSnapshot{}, err
	}

	contents, err := c.GetByScope(ctx, TopicContents, courseID)
	if err != nil {
		return models.CourseSnapshot{}, err
	}
	snapshot.Contents, err = decodeAll[models.TopicContent](contents)
	if err != nil {
		return models.CourseSnapshot{}, err
	}

	return snapshot, nil
}

func (s *offlineStorage) GetTopicsOffline(ctx context.Context, courseID string) ([]models.Topic, error) {
	rec, err := s.store.Collections().Get(ctx, CourseTopics, courseID)
	if err != nil {
		return nil, err
	}

	var topics []models.Topic
	if err := rec.Decode(&topics); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return topics, nil
}

func (s *offlineStorage) GetTopicContentOffline(ctx context.Context, topicID string) (models.TopicContent, error) {
	rec, err := s.store.Collections().Get(ctx, TopicContents, topicID)
	if err != nil {
		return models.TopicContent{}, err
	}

	var content models.TopicContent
	if err := rec.Decode(&content); err != nil {
		return models.TopicContent{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return content, nil
}

// RemoveCourseOffline deletes the course, its topic list, all topic content
// owned by it and its registry entry. Removing a course that is not stored
// is a no-op.
func (s *offlineStorage) RemoveCourseOffline(ctx context.Context, courseID string) error {
	err := s.store.InTx(ctx, func(tx Tx) error {
		c := tx.Collections()
		if err := c.Delete(ctx, Courses, courseID); err != nil {
			return err
		}
		if err := c.Delete(ctx, CourseTopics, courseID); err != nil {
			return err
		}
		if err := c.DeleteByScope(ctx, TopicContents, courseID); err != nil {
			return err
		}
		return c.Delete(ctx, Downloads, models.DownloadID(models.DownloadCourse, courseID))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "offlineStorage.RemoveCourseOffline").
			Str("course_id", courseID).
			Msg("failed to remove course")
		return fmt.Errorf("failed to remove course %s: %w", courseID, err)
	}
	return nil
}

func (s *offlineStorage) SaveMaterialOffline(ctx context.Context, material models.Material, entry models.DownloadEntry) error {
	now := s.now()
	material.OfflineAt = &now

	materialRec, err := models.NewRecord(material.ID, "", material)
	if err != nil {
		return fmt.Errorf("failed to encode material %s: %w", material.ID, err)
	}
	entryRec, err := models.NewRecord(entry.ID, string(entry.Type), entry)
	if err != nil {
		return fmt.Errorf("failed to encode download entry %s: %w", entry.ID, err)
	}

	return s.store.InTx(ctx, func(tx Tx) error {
		if err := tx.Collections().Put(ctx, Materials, materialRec); err != nil {
			return err
		}
		return tx.Collections().Put(ctx, Downloads, entryRec)
	})
}

func (s *offlineStorage) GetMaterialOffline(ctx context.Context, materialID string) (models.Material, error) {
	rec, err := s.store.Collections().Get(ctx, Materials, materialID)
	if err != nil {
		return models.Material{}, err
	}

	var material models.Material
	if err := rec.Decode(&material); err != nil {
		return models.Material{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return material, nil
}

func (s *offlineStorage) RemoveMaterialOffline(ctx context.Context, materialID string) error {
	return s.store.InTx(ctx, func(tx Tx) error {
		if err := tx.Collections().Delete(ctx, Materials, materialID); err != nil {
			return err
		}
		return tx.Collections().Delete(ctx, Downloads, models.DownloadID(models.DownloadMaterial, materialID))
	})
}

// SaveProgress stores server-confirmed progress records. Any other record of
// the same topic, such as a provisional one keyed by topic id, is replaced.
func (s *offlineStorage) SaveProgress(ctx context.Context, records ...models.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.store.InTx(ctx, func(tx Tx) error {
		return putProgress(ctx, tx.Collections(), records)
	})
}

// SaveProvisionalProgress writes the optimistic record and enqueues the
// mutation that will confirm it, atomically.
func (s *offlineStorage) SaveProvisionalProgress(ctx context.Context, record models.ProgressRecord, m models.Mutation) (int64, error) {
	if record.OfflineAt == nil {
		now := s.now()
		record.OfflineAt = &now
	}

	var id int64
	err := s.store.InTx(ctx, func(tx Tx) error {
		if err := putProgress(ctx, tx.Collections(), []models.ProgressRecord{record}); err != nil {
			return err
		}
		var err error
		id, err = tx.Queue().Enqueue(ctx, m)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "offlineStorage.SaveProvisionalProgress").
			Str("topic_id", record.TopicID).
			Msg("failed to queue progress update")
		return 0, fmt.Errorf("failed to queue progress of topic %s: %w", record.TopicID, err)
	}
	return id, nil
}

func (s *offlineStorage) GetProgress(ctx context.Context, topicID string) (models.ProgressRecord, error) {
	c := s.store.Collections()

	rec, err := c.Get(ctx, Progress, topicID)
	if err == nil {
		var p models.ProgressRecord
		if err := rec.Decode(&p); err != nil {
			return models.ProgressRecord{}, fmt.Errorf("%w: %w", ErrDecodingRecord, err)
		}
		return p, nil
	}
	if !isNotFound(err) {
		return models.ProgressRecord{}, err
	}

	// confirmed records are keyed by server id
	all, err := c.GetAll(ctx, Progress)
	if err != nil {
		return models.ProgressRecord{}, err
	}
	records, err := decodeAll[models.ProgressRecord](all)
	if err != nil {
		return models.ProgressRecord{}, err
	}
	for _, p := range records {
		if p.TopicID == topicID {
			return p, nil
		}
	}
	return models.ProgressRecord{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, Progress, topicID)
}

func (s *offlineStorage) GetProgressForCourse(ctx context.Context, courseID string) ([]models.ProgressRecord, error) {
	recs, err := s.store.Collections().GetByScope(ctx, Progress, courseID)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.ProgressRecord](recs)
}

func (s *offlineStorage) PendingMutations(ctx context.Context) ([]models.PendingMutation, error) {
	return s.store.Queue().List(ctx)
}

func (s *offlineStorage) PendingCount(ctx context.Context) (int, error) {
	return s.store.Queue().Count(ctx)
}

func (s *offlineStorage) AcknowledgeUpTo(ctx context.Context, lastID int64, confirmed []models.ProgressRecord) error {
	return s.store.InTx(ctx, func(tx Tx) error {
		if err := tx.Queue().DeleteUpTo(ctx, lastID); err != nil {
			return err
		}
		return putProgress(ctx, tx.Collections(), confirmed)
	})
}

func (s *offlineStorage) SaveRevisions(ctx context.Context, revisions ...models.Revision) error {
	recs := make([]models.Record, 0, len(revisions))
	for _, r := range revisions {
		rec, err := models.NewRecord(r.ID, r.CourseID, r)
		if err != nil {
			return fmt.Errorf("failed to encode revision %s: %w", r.ID, err)
		}
		recs = append(recs, rec)
	}
	return s.store.Collections().PutMany(ctx, Revisions, recs)
}

func (s *offlineStorage) GetRevisions(ctx context.Context) ([]models.Revision, error) {
	recs, err := s.store.Collections().GetAll(ctx, Revisions)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.Revision](recs)
}

func (s *offlineStorage) SetUserData(ctx context.Context, key string, value any) error {
	rec, err := models.NewRecord(key, "", value)
	if err != nil {
		return fmt.Errorf("failed to encode user data %s: %w", key, err)
	}
	return s.store.Collections().Put(ctx, UserData, rec)
}

func (s *offlineStorage) GetUserData(ctx context.Context, key string, dst any) error {
	rec, err := s.store.Collections().Get(ctx, UserData, key)
	if err != nil {
		return err
	}
	if err := rec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingRecord, err)
	}
	return nil
}

func (s *offlineStorage) GetDownloads(ctx context.Context) ([]models.DownloadEntry, error) {
	recs, err := s.store.Collections().GetAll(ctx, Downloads)
	if err != nil {
		return nil, err
	}
	return decodeAll[models.DownloadEntry](recs)
}

func (s *offlineStorage) IsDownloaded(ctx context.Context, t models.DownloadType, entityID string) (bool, error) {
	_, err := s.store.Collections().Get(ctx, Downloads, models.DownloadID(t, entityID))
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

func (s *offlineStorage) Stats(ctx context.Context) (models.StorageStats, error) {
	downloads, err := s.GetDownloads(ctx)
	if err != nil {
		return models.StorageStats{}, err
	}

	stats := models.StorageStats{TotalDownloads: len(downloads)}
	for _, d := range downloads {
		switch d.Type {
		case models.DownloadCourse:
			stats.CourseCount++
		case models.DownloadMaterial:
			stats.MaterialCount++
		}
		stats.TotalSizeBytes += d.SizeBytes
	}
	stats.TotalSizeMB = float64(stats.TotalSizeBytes) / bytesPerMB

	stats.PendingSyncs, err = s.PendingCount(ctx)
	if err != nil {
		return models.StorageStats{}, err
	}
	return stats, nil
}

// ClearAll empties every collection and the pending queue.
func (s *offlineStorage) ClearAll(ctx context.Context) error {
	return s.store.InTx(ctx, func(tx Tx) error {
		for _, c := range AllCollections() {
			if err := tx.Collections().Clear(ctx, c); err != nil {
				return err
			}
		}
		return tx.Queue().Clear(ctx)
	})
}

// putProgress stores records under their canonical key. A record without a
// course id is attributed to the downloaded course listing its topic, so it
// shows up in that course's progress view.
func putProgress(ctx context.Context, c CollectionRepository, records []models.ProgressRecord) error {
	for _, p := range records {
		if p.CourseID == "" && p.TopicID != "" {
			courseID, err := courseOfTopic(ctx, c, p.TopicID)
			if err != nil {
				return err
			}
			p.CourseID = courseID
		}
		key := models.CanonicalProgressKey(p)

		if p.TopicID != "" {
			if err := dropOtherTopicProgress(ctx, c, p.TopicID, key); err != nil {
				return err
			}
		}

		rec, err := models.NewRecord(key, p.CourseID, p)
		if err != nil {
			return fmt.Errorf("failed to encode progress %s: %w", key, err)
		}
		if err := c.Put(ctx, Progress, rec); err != nil {
			return err
		}
	}
	return nil
}

// courseOfTopic returns the id of the stored course whose topic list holds
// topicID, or "" when no downloaded course has it.
func courseOfTopic(ctx context.Context, c CollectionRepository, topicID string) (string, error) {
	lists, err := c.GetAll(ctx, CourseTopics)
	if err != nil {
		return "", err
	}
	for _, rec := range lists {
		var topics []models.Topic
		if err := rec.Decode(&topics); err != nil {
			continue
		}
		for _, t := range topics {
			if t.ID == topicID {
				return rec.Key, nil
			}
		}
	}
	return "", nil
}

func dropOtherTopicProgress(ctx context.Context, c CollectionRepository, topicID, keep string) error {
	all, err := c.GetAll(ctx, Progress)
	if err != nil {
		return err
	}
	for _, rec := range all {
		if rec.Key == keep {
			continue
		}
		var p models.ProgressRecord
		if err := rec.Decode(&p); err != nil {
			continue
		}
		if p.TopicID == topicID {
			if err := c.Delete(ctx, Progress, rec.Key); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeAll[T any](recs []models.Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		var v T
		if err := rec.Decode(&v); err != nil {
			return nil, errors.Join(ErrDecodingRecord, fmt.Errorf("record %s: %w", rec.Key, err))
		}
		out = append(out, v)
	}
	return out, nil
}
