package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

type courseService struct {
	api       adapter.RemoteAPI
	offline   store.OfflineStorage
	conn      Connectivity
	validator validators.Validator
	logger    *logger.Logger
}

func NewCourseService(api adapter.RemoteAPI, offline store.OfflineStorage, conn Connectivity, validator validators.Validator, logger *logger.Logger) CourseService {
	return &courseService{
		api:       api,
		offline:   offline,
		conn:      conn,
		validator: validator,
		logger:    logger,
	}
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (models.ReadResult[models.CourseDetail], error) {
	if err := validateID(ctx, s.validator, courseID); err != nil {
		return models.ReadResult[models.CourseDetail]{}, err
	}

	return networkFirst(ctx, s.conn, readPath[models.CourseDetail]{
		fetch: func(ctx context.Context) (models.CourseDetail, error) {
			return s.api.GetCourse(ctx, courseID)
		},
		local: func(ctx context.Context) (models.CourseDetail, error) {
			snapshot, err := s.offline.GetCourseOffline(ctx, courseID)
			if err != nil {
				return models.CourseDetail{}, err
			}
			return models.CourseDetail{Course: snapshot.Course, Topics: snapshot.Topics}, nil
		},
	})
}

func (s *courseService) GetTopics(ctx context.Context, courseID string) (models.ReadResult[[]models.Topic], error) {
	if err := validateID(ctx, s.validator, courseID); err != nil {
		return models.ReadResult[[]models.Topic]{}, err
	}

	return networkFirst(ctx, s.conn, readPath[[]models.Topic]{
		fetch: func(ctx context.Context) ([]models.Topic, error) {
			return s.api.GetTopics(ctx, courseID)
		},
		local: func(ctx context.Context) ([]models.Topic, error) {
			return s.offline.GetTopicsOffline(ctx, courseID)
		},
	})
}

// GetTopicContent falls back to the content stored by a course download. A
// stored content that belongs to another course is treated as missing.
func (s *courseService) GetTopicContent(ctx context.Context, courseID, topicID string) (models.ReadResult[json.RawMessage], error) {
	if err := validateID(ctx, s.validator, courseID); err != nil {
		return models.ReadResult[json.RawMessage]{}, err
	}
	if err := validateID(ctx, s.validator, topicID); err != nil {
		return models.ReadResult[json.RawMessage]{}, err
	}

	return networkFirst(ctx, s.conn, readPath[json.RawMessage]{
		fetch: func(ctx context.Context) (json.RawMessage, error) {
			return s.api.GetTopicContent(ctx, courseID, topicID)
		},
		local: func(ctx context.Context) (json.RawMessage, error) {
			content, err := s.offline.GetTopicContentOffline(ctx, topicID)
			if err != nil {
				return nil, err
			}
			if content.CourseID != "" && content.CourseID != courseID {
				return nil, fmt.Errorf("%w: topic %s of course %s", store.ErrRecordNotFound, topicID, courseID)
			}
			return content.Content, nil
		},
	})
}

func (s *courseService) GetMaterial(ctx context.Context, materialID string) (models.ReadResult[models.Material], error) {
	if err := validateID(ctx, s.validator, materialID); err != nil {
		return models.ReadResult[models.Material]{}, err
	}

	return networkFirst(ctx, s.conn, readPath[models.Material]{
		fetch: func(ctx context.Context) (models.Material, error) {
			return s.api.GetMaterial(ctx, materialID)
		},
		local: func(ctx context.Context) (models.Material, error) {
			return s.offline.GetMaterialOffline(ctx, materialID)
		},
	})
}

func (s *courseService) GetRevisions(ctx context.Context) (models.ReadResult[[]models.Revision], error) {
	return networkFirst(ctx, s.conn, readPath[[]models.Revision]{
		fetch: s.api.GetRevisions,
		local: s.offline.GetRevisions,
		mirror: func(ctx context.Context, revisions []models.Revision) {
			if err := s.offline.SaveRevisions(ctx, revisions...); err != nil {
				s.logger.Warn().Err(err).
					Str("func", "courseService.GetRevisions").
					Msg("failed to store revisions locally")
			}
		},
	})
}

func validateID(ctx context.Context, v validators.Validator, id string) error {
	if err := v.Validate(ctx, validators.EntityID(id)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
