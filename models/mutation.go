// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// MutationKind tags the payload of a queued mutation.
type MutationKind string

// MutationProgress is the kind of [ProgressMutation].
const MutationProgress MutationKind = "progress"

// Mutation is a local write that has not been acknowledged by the server yet.
//
// The set of implementations is closed: the unexported marker keeps other
// packages from adding kinds, and every kind dispatches itself through
// [MutationApplier]. Adding a kind means adding a method to MutationApplier,
// which breaks the build of every applier until the kind is handled.
type Mutation interface {
	Kind() MutationKind
	TargetID() string
	Accept(ctx context.Context, applier MutationApplier) error

	sealed()
}

// MutationApplier executes mutations against the remote API.
type MutationApplier interface {
	ApplyProgress(ctx context.Context, m ProgressMutation) error
}

// ProgressMutation is a progress update of one topic.
type ProgressMutation struct {
	TopicID string         `json:"topicId" validate:"required,max=64"`
	Data    ProgressUpdate `json:"data"`
}

func (m ProgressMutation) Kind() MutationKind { return MutationProgress }
func (m ProgressMutation) TargetID() string   { return m.TopicID }
func (m ProgressMutation) sealed()            {}

func (m ProgressMutation) Accept(ctx context.Context, applier MutationApplier) error {
	return applier.ApplyProgress(ctx, m)
}

// PendingMutation is one entry of the pending queue. ID is assigned by the
// store and strictly increases in enqueue order.
type PendingMutation struct {
	ID         int64
	EnqueuedAt time.Time
	Mutation   Mutation
}

// EncodeMutation returns the persisted payload of m.
func EncodeMutation(m Mutation) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMutation
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error encoding %s mutation: %w", m.Kind(), err)
	}
	return payload, nil
}

// DecodeMutation restores a mutation of the given kind from its payload.
func DecodeMutation(kind MutationKind, payload []byte) (Mutation, error) {
	switch kind {
	case MutationProgress:
		var m ProgressMutation
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("error decoding %s mutation: %w", kind, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMutationKind, kind)
	}
}
