package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/models"
)

var completedUpdate = models.ProgressUpdate{
	CourseID:         "c1",
	Status:           models.ProgressCompleted,
	MasteryLevel:     0.8,
	TimeSpentMinutes: 25,
}

func TestUpdateProgress_Online(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", completedUpdate).
		Return(confirmed("p1", "t1", "c1", completedUpdate), nil)

	rec, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)
	assert.Equal(t, "p1", rec.ID)
	assert.False(t, rec.Provisional())

	stored, err := env.services.Progress.GetTopicProgress(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "p1", stored.ID)
	assert.False(t, stored.Provisional())

	pending, err := env.services.Sync.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestUpdateProgress_OfflineQueues(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	rec, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)
	assert.True(t, rec.Provisional())
	assert.Equal(t, "t1", rec.TopicID)
	assert.Equal(t, 0.8, rec.MasteryLevel)
	assert.NotNil(t, rec.CompletedAt)

	stored, err := env.services.Progress.GetTopicProgress(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, stored.Provisional())

	entries, err := env.storages.Offline.PendingMutations(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ProgressMutation{TopicID: "t1", Data: completedUpdate}, entries[0].Mutation)
}

func TestUpdateProgress_NetworkFailureQueues(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", completedUpdate).
		Return(models.ProgressRecord{}, networkDown("update progress"))

	rec, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)
	assert.True(t, rec.Provisional())

	pending, err := env.services.Sync.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)
}

func TestUpdateProgress_OnlineSendsQueuedFirst(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	started := models.ProgressUpdate{CourseID: "c1", Status: models.ProgressInProgress, MasteryLevel: 0.3}
	_, err := env.services.Progress.UpdateProgress(ctx, "t1", started)
	require.NoError(t, err)

	// back online before the sync job noticed
	env.monitor.SetOnline(true)

	gomock.InOrder(
		env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", started).
			Return(confirmed("p1", "t1", "c1", started), nil),
		env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", completedUpdate).
			Return(confirmed("p1", "t1", "c1", completedUpdate), nil),
	)

	rec, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)
	assert.False(t, rec.Provisional())

	pending, err := env.services.Sync.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)

	stored, err := env.services.Progress.GetTopicProgress(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.ProgressCompleted, stored.Status)
}

func TestUpdateProgress_QueuesBehindFailedDrain(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	started := models.ProgressUpdate{CourseID: "c1", Status: models.ProgressInProgress, MasteryLevel: 0.3}
	_, err := env.services.Progress.UpdateProgress(ctx, "t1", started)
	require.NoError(t, err)

	env.monitor.SetOnline(true)

	// only the queued entry is attempted; the new write must not overtake it
	env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", started).
		Return(models.ProgressRecord{}, networkDown("update progress"))

	rec, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)
	assert.True(t, rec.Provisional())

	entries, err := env.storages.Offline.PendingMutations(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ProgressMutation{TopicID: "t1", Data: started}, entries[0].Mutation)
	assert.Equal(t, models.ProgressMutation{TopicID: "t1", Data: completedUpdate}, entries[1].Mutation)
	assert.Less(t, entries[0].ID, entries[1].ID)
}

func TestUpdateProgress_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		update  models.ProgressUpdate
		remote  error
		wantErr error
	}{
		{
			name:    "server rejects update",
			update:  completedUpdate,
			remote:  adapter.ErrBadRequest,
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "session expired",
			update:  completedUpdate,
			remote:  adapter.ErrUnauthorized,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "mastery out of range",
			update:  models.ProgressUpdate{MasteryLevel: 1.5},
			wantErr: ErrInvalidDataProvided,
		},
		{
			name:    "unknown status",
			update:  models.ProgressUpdate{Status: "paused"},
			wantErr: ErrInvalidDataProvided,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, true)
			ctx := context.Background()
			if tt.remote != nil {
				env.api.EXPECT().UpdateProgress(gomock.Any(), "t1", tt.update).
					Return(models.ProgressRecord{}, tt.remote)
			}

			_, err := env.services.Progress.UpdateProgress(ctx, "t1", tt.update)
			assert.ErrorIs(t, err, tt.wantErr)

			pending, err := env.services.Sync.PendingCount(ctx)
			require.NoError(t, err)
			assert.Zero(t, pending)
		})
	}
}

func TestGetCourseProgress_KeepsProvisionalRecords(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.services.Progress.UpdateProgress(ctx, "t1", completedUpdate)
	require.NoError(t, err)

	env.monitor.SetOnline(true)
	stale := models.ProgressUpdate{Status: models.ProgressInProgress, MasteryLevel: 0.1}
	env.api.EXPECT().GetCourseProgress(gomock.Any(), "c1").Return([]models.ProgressRecord{
		confirmed("p1", "t1", "c1", stale),
		confirmed("p2", "t2", "", stale),
	}, nil)

	res, err := env.services.Progress.GetCourseProgress(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, res.Offline)
	assert.Len(t, res.Value, 2)

	t1, err := env.services.Progress.GetTopicProgress(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, t1.Provisional())
	assert.Equal(t, 0.8, t1.MasteryLevel)

	t2, err := env.services.Progress.GetTopicProgress(ctx, "t2")
	require.NoError(t, err)
	assert.Equal(t, "p2", t2.ID)
	assert.Equal(t, "c1", t2.CourseID)

	env.monitor.SetOnline(false)

	res, err = env.services.Progress.GetCourseProgress(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Len(t, res.Value, 2)
}

func TestGetTopicProgress_Missing(t *testing.T) {
	env := newTestEnv(t, false)

	_, err := env.services.Progress.GetTopicProgress(context.Background(), "t404")
	assert.ErrorIs(t, err, ErrNotAvailableOffline)
}
