// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Record is one row of a store collection. Value is the JSON encoding of the
// snapshot and is always replaced as a whole. Scope groups records that are
// owned by one parent entity (topic content of a course, progress of a
// course) so they can be removed together.
type Record struct {
	Key      string
	Scope    string
	Value    json.RawMessage
	StoredAt time.Time
}

// NewRecord encodes v into a Record.
func NewRecord(key, scope string, v any) (Record, error) {
	value, err := json.Marshal(v)
	if err != nil {
		return Record{}, err
	}
	return Record{Key: key, Scope: scope, Value: value}, nil
}

// Decode unmarshals the record value into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal(r.Value, v)
}
