package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalProgressKey_Priority(t *testing.T) {
	tests := []struct {
		name string
		rec  ProgressRecord
		want string
	}{
		{name: "server id wins", rec: ProgressRecord{ID: "p-1", TopicID: "topic-1"}, want: "p-1"},
		{name: "topic id when no server id", rec: ProgressRecord{TopicID: "topic-1"}, want: "topic-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalProgressKey(tt.rec))
		})
	}
}

func TestCanonicalProgressKey_FingerprintIsStable(t *testing.T) {
	rec := ProgressRecord{Status: ProgressCompleted, MasteryLevel: 0.5, TimeSpentMinutes: 12}

	first := CanonicalProgressKey(rec)
	second := CanonicalProgressKey(rec)

	require.True(t, strings.HasPrefix(first, "progress_"))
	assert.Len(t, first, len("progress_")+16)
	assert.Equal(t, first, second)
}

func TestCanonicalProgressKey_IgnoresOfflineTimestamp(t *testing.T) {
	a := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(time.Hour)

	recA := ProgressRecord{Status: ProgressInProgress, OfflineAt: &a}
	recB := ProgressRecord{Status: ProgressInProgress, OfflineAt: &b}

	assert.Equal(t, CanonicalProgressKey(recA), CanonicalProgressKey(recB))
	assert.NotEqual(t, CanonicalProgressKey(recA), CanonicalProgressKey(ProgressRecord{Status: ProgressMastered}))
}

func TestProgressUpdate_Record(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	rec := ProgressUpdate{CourseID: "course-1", Status: ProgressCompleted, MasteryLevel: 1}.Record("topic-1", at)

	assert.Equal(t, "topic-1", rec.TopicID)
	assert.Equal(t, "course-1", rec.CourseID)
	assert.True(t, rec.Provisional())
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, at, *rec.CompletedAt)

	rec = ProgressUpdate{Status: ProgressInProgress}.Record("topic-2", at)
	assert.Nil(t, rec.CompletedAt)
}
