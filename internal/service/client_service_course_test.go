package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/connectivity"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/mock"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

func TestGetCourse_Online(t *testing.T) {
	env := newTestEnv(t, true)
	detail := models.CourseDetail{Course: models.Course{ID: "c1", Title: "Algebra"}}
	env.api.EXPECT().GetCourse(gomock.Any(), "c1").Return(detail, nil)

	res, err := env.services.Courses.GetCourse(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, res.Offline)
	assert.Equal(t, "Algebra", res.Value.Course.Title)
}

func TestGetCourse_FallsBackOnNetworkFailure(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.expectCourse("c1", "Algebra", []string{"t1", "t2"})
	_, err := env.services.Downloads.DownloadCourse(ctx, "c1")
	require.NoError(t, err)

	for _, cause := range []error{networkDown("get course"), adapter.ErrBadGateway, adapter.ErrServiceUnavailable} {
		env.api.EXPECT().GetCourse(gomock.Any(), "c1").Return(models.CourseDetail{}, cause)

		res, err := env.services.Courses.GetCourse(ctx, "c1")
		require.NoError(t, err)
		assert.True(t, res.Offline)
		assert.Equal(t, "Algebra", res.Value.Course.Title)
		assert.Len(t, res.Value.Topics, 2)
	}
}

func TestGetCourse_OfflineSkipsNetwork(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.expectCourse("c1", "Algebra", []string{"t1"})
	_, err := env.services.Downloads.DownloadCourse(ctx, "c1")
	require.NoError(t, err)

	env.monitor.SetOnline(false)

	res, err := env.services.Courses.GetCourse(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, res.Offline)

	_, err = env.services.Courses.GetCourse(ctx, "c2")
	assert.ErrorIs(t, err, ErrNotAvailableOffline)
}

func TestGetCourse_RemoteRejectionIsNotMasked(t *testing.T) {
	env := newTestEnv(t, true)
	env.api.EXPECT().GetCourse(gomock.Any(), "c1").Return(models.CourseDetail{}, adapter.ErrUnauthorized)

	_, err := env.services.Courses.GetCourse(context.Background(), "c1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetTopics_Fallback(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()

	_, err := env.services.Courses.GetTopics(ctx, "c1")
	assert.ErrorIs(t, err, ErrNotAvailableOffline)

	env.monitor.SetOnline(true)
	env.expectCourse("c1", "Algebra", []string{"t1", "t2"})
	_, err = env.services.Downloads.DownloadCourse(ctx, "c1")
	require.NoError(t, err)

	env.api.EXPECT().GetTopics(gomock.Any(), "c1").Return(nil, networkDown("get topics"))
	res, err := env.services.Courses.GetTopics(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	require.Len(t, res.Value, 2)
	assert.Equal(t, "t1", res.Value[0].ID)
}

func TestGetTopicContent(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.expectCourse("c1", "Algebra", []string{"t1"})
	_, err := env.services.Downloads.DownloadCourse(ctx, "c1")
	require.NoError(t, err)

	env.api.EXPECT().GetTopicContent(gomock.Any(), "c1", "t1").Return(topicBody("t1"), nil)
	res, err := env.services.Courses.GetTopicContent(ctx, "c1", "t1")
	require.NoError(t, err)
	assert.False(t, res.Offline)

	env.monitor.SetOnline(false)

	res, err = env.services.Courses.GetTopicContent(ctx, "c1", "t1")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.JSONEq(t, string(topicBody("t1")), string(res.Value))

	_, err = env.services.Courses.GetTopicContent(ctx, "c9", "t1")
	assert.ErrorIs(t, err, ErrNotAvailableOffline)

	_, err = env.services.Courses.GetTopicContent(ctx, "c1", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestGetMaterial_Fallback(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	env.api.EXPECT().GetMaterial(gomock.Any(), "m1").Return(models.Material{ID: "m1", Title: "Notes"}, nil)
	_, err := env.services.Downloads.DownloadMaterial(ctx, "m1")
	require.NoError(t, err)

	env.api.EXPECT().GetMaterial(gomock.Any(), "m1").Return(models.Material{}, networkDown("get material"))
	res, err := env.services.Courses.GetMaterial(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, "Notes", res.Value.Title)
}

func TestGetRevisions_RefreshesLocalCopy(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	revisions := []models.Revision{
		{ID: "r1", TopicID: "t1", CourseID: "c1", ScheduledFor: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), Status: "pending"},
	}
	env.api.EXPECT().GetRevisions(gomock.Any()).Return(revisions, nil)

	res, err := env.services.Courses.GetRevisions(ctx)
	require.NoError(t, err)
	assert.False(t, res.Offline)

	env.monitor.SetOnline(false)

	res, err = env.services.Courses.GetRevisions(ctx)
	require.NoError(t, err)
	assert.True(t, res.Offline)
	assert.Equal(t, revisions, res.Value)
}

func TestCourseService_StoreUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock.NewMockRemoteAPI(ctrl)
	storages := store.NewUnavailableStorages(errors.New("locked"), logger.Nop())
	conn := connectivity.NewMonitor(true, logger.Nop())
	courses := NewCourseService(api, storages.Offline, conn, validators.NewProgressValidator(), logger.Nop())
	ctx := context.Background()

	// online reads keep working without a local store
	detail := models.CourseDetail{Course: models.Course{ID: "c1"}}
	api.EXPECT().GetCourse(gomock.Any(), "c1").Return(detail, nil)
	res, err := courses.GetCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "c1", res.Value.Course.ID)

	api.EXPECT().GetCourse(gomock.Any(), "c1").Return(models.CourseDetail{}, networkDown("get course"))
	_, err = courses.GetCourse(ctx, "c1")
	assert.ErrorIs(t, err, ErrOfflineDataUnavailable)
}
