// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/hex"
	"encoding/json"
	"hash/fnv"
	"time"
)

// Progress status values accepted by the remote API.
const (
	ProgressNotStarted = "not-started"
	ProgressInProgress = "in-progress"
	ProgressCompleted  = "completed"
	ProgressMastered   = "mastered"
)

// ProgressRecord is a learner's progress on one topic.
type ProgressRecord struct {
	ID               string     `json:"_id,omitempty"`
	TopicID          string     `json:"topic,omitempty"`
	CourseID         string     `json:"course,omitempty"`
	Status           string     `json:"status,omitempty"`
	MasteryLevel     float64    `json:"masteryLevel"`
	TimeSpentMinutes int        `json:"timeSpentMinutes"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`

	// OfflineAt marks a record written locally without server acknowledgement.
	// It is transient and never part of the record's identity.
	OfflineAt *time.Time `json:"_offlineAt,omitempty"`
}

// Provisional reports whether the record is still waiting for the server.
func (p ProgressRecord) Provisional() bool {
	return p.OfflineAt != nil
}

// ProgressUpdate is the body of PUT /api/progress/{topicId}.
type ProgressUpdate struct {
	CourseID         string  `json:"courseId,omitempty" validate:"omitempty,max=64"`
	Status           string  `json:"status,omitempty" validate:"omitempty,oneof=not-started in-progress completed mastered"`
	MasteryLevel     float64 `json:"masteryLevel" validate:"gte=0,lte=1"`
	TimeSpentMinutes int     `json:"timeSpentMinutes" validate:"gte=0"`
}

// Record builds the provisional progress record of an update of topicID.
func (u ProgressUpdate) Record(topicID string, at time.Time) ProgressRecord {
	rec := ProgressRecord{
		TopicID:          topicID,
		CourseID:         u.CourseID,
		Status:           u.Status,
		MasteryLevel:     u.MasteryLevel,
		TimeSpentMinutes: u.TimeSpentMinutes,
		OfflineAt:        &at,
	}
	if u.Status == ProgressCompleted || u.Status == ProgressMastered {
		completed := at
		rec.CompletedAt = &completed
	}
	return rec
}

const progressKeyPrefix = "progress_"

// CanonicalProgressKey returns the storage key of rec: the server id when
// present, otherwise the topic id, otherwise a fingerprint of the record
// content. The fingerprint ignores OfflineAt so the same payload always maps
// to the same key.
func CanonicalProgressKey(rec ProgressRecord) string {
	if rec.ID != "" {
		return rec.ID
	}
	if rec.TopicID != "" {
		return rec.TopicID
	}

	rec.OfflineAt = nil
	// encoding a struct of scalars cannot fail
	payload, _ := json.Marshal(rec)

	h := fnv.New64a()
	_, _ = h.Write(payload)
	return progressKeyPrefix + hex.EncodeToString(h.Sum(nil))
}
