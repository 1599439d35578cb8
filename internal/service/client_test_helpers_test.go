package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/edu-offline/internal/adapter"
	"github.com/MKhiriev/edu-offline/internal/config"
	"github.com/MKhiriev/edu-offline/internal/connectivity"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/internal/mock"
	"github.com/MKhiriev/edu-offline/internal/store"
	"github.com/MKhiriev/edu-offline/internal/validators"
	"github.com/MKhiriev/edu-offline/models"
)

type testEnv struct {
	api      *mock.MockRemoteAPI
	storages *store.ClientStorages
	monitor  *connectivity.Monitor
	services *ClientServices
}

func newTestEnv(t *testing.T, online bool) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := mock.NewMockRemoteAPI(ctrl)

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		DB: config.ClientDB{DSN: ":memory:"},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	monitor := connectivity.NewMonitor(online, logger.Nop())
	services := NewClientServices(storages, api, monitor, validators.NewProgressValidator(), config.ClientWorkers{}, logger.Nop())

	return &testEnv{api: api, storages: storages, monitor: monitor, services: services}
}

// expectCourse registers one GetCourse call and one GetTopicContent call per
// topic. Topics listed in failing return ErrNotFound.
func (e *testEnv) expectCourse(courseID, title string, topics []string, failing ...string) models.CourseDetail {
	detail := models.CourseDetail{
		Course: models.Course{ID: courseID, Title: title, IsPublished: true},
	}
	for i, id := range topics {
		detail.Topics = append(detail.Topics, models.Topic{ID: id, Title: "Topic " + id, CourseID: courseID, Order: i + 1})
	}
	e.api.EXPECT().GetCourse(gomock.Any(), courseID).Return(detail, nil)

	failed := make(map[string]bool, len(failing))
	for _, id := range failing {
		failed[id] = true
	}
	for _, id := range topics {
		if failed[id] {
			e.api.EXPECT().GetTopicContent(gomock.Any(), courseID, id).
				Return(nil, fmt.Errorf("get topic content: %w", adapter.ErrNotFound))
			continue
		}
		e.api.EXPECT().GetTopicContent(gomock.Any(), courseID, id).Return(topicBody(id), nil)
	}
	return detail
}

func topicBody(topicID string) json.RawMessage {
	return json.RawMessage(`{"topic":"` + topicID + `","blocks":[]}`)
}

func networkDown(op string) error {
	return fmt.Errorf("%s request: %w: dial tcp: connection refused", op, adapter.ErrNetworkUnavailable)
}

func completedAt() time.Time {
	return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
}

func confirmed(id, topicID, courseID string, update models.ProgressUpdate) models.ProgressRecord {
	completed := completedAt()
	return models.ProgressRecord{
		ID:               id,
		TopicID:          topicID,
		CourseID:         courseID,
		Status:           update.Status,
		MasteryLevel:     update.MasteryLevel,
		TimeSpentMinutes: update.TimeSpentMinutes,
		CompletedAt:      &completed,
	}
}
