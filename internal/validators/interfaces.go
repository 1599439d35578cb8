// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the values that enter the offline engine from
// outside: progress updates from the learner, mutations replayed from the
// pending queue and entity ids taken from URLs or the command line.
//
// Callers pass the field names of this package (FieldStatus, FieldData, ...)
// to restrict a check to part of a value.
package validators

import "context"

// Validator validates a value, optionally only the named fields of it.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
