// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client of the remote education REST API.
//
// The primary abstraction is [RemoteAPI], which decouples the sync engine
// from the HTTP contract. Error values defined in errors.go are mapped from
// HTTP status codes by mapHTTPError so that callers can use [errors.Is]
// (e.g. [ErrNotFound] for 404). Transport failures are reported as
// [ErrNetworkUnavailable], which the services treat as "offline".
package adapter

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/edu-offline/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_api_mock.go -package=mock

// RemoteAPI is the subset of the remote REST API the offline engine consumes.
type RemoteAPI interface {
	// SetToken stores the bearer token attached to all subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored, or an empty string.
	Token() string

	// GetCourse fetches a course together with its topic list.
	GetCourse(ctx context.Context, courseID string) (models.CourseDetail, error)

	// GetTopics fetches the topic list of a course.
	GetTopics(ctx context.Context, courseID string) ([]models.Topic, error)

	// GetTopicContent fetches the body of one topic. The payload is returned
	// undecoded.
	GetTopicContent(ctx context.Context, courseID, topicID string) (json.RawMessage, error)

	// GetMaterial fetches a standalone study material.
	GetMaterial(ctx context.Context, materialID string) (models.Material, error)

	// GetCourseProgress fetches the learner's progress records of a course.
	GetCourseProgress(ctx context.Context, courseID string) ([]models.ProgressRecord, error)

	// UpdateProgress sets the learner's progress on a topic and returns the
	// server record. The write is idempotent at the topic.
	UpdateProgress(ctx context.Context, topicID string, update models.ProgressUpdate) (models.ProgressRecord, error)

	// GetRevisions fetches the learner's scheduled revisions.
	GetRevisions(ctx context.Context) ([]models.Revision, error)

	// Health returns nil when the remote API answers its health endpoint.
	Health(ctx context.Context) error
}
