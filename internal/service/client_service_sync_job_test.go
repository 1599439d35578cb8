// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/edu-offline/internal/connectivity"
	"github.com/MKhiriev/edu-offline/internal/logger"
	"github.com/MKhiriev/edu-offline/models"
)

// spyOrchestrator counts Drain calls.
type spyOrchestrator struct {
	calls atomic.Int32
}

func (s *spyOrchestrator) Drain(_ context.Context) (models.DrainReport, error) {
	s.calls.Add(1)
	return models.DrainReport{}, nil
}

func (s *spyOrchestrator) PendingCount(_ context.Context) (int, error) { return 0, nil }

func (s *spyOrchestrator) LastSync(_ context.Context) (time.Time, error) { return time.Time{}, nil }

func newTestJob(online bool, interval time.Duration) (*spyOrchestrator, *connectivity.Monitor, ClientSyncJob) {
	spy := &spyOrchestrator{}
	monitor := connectivity.NewMonitor(online, logger.Nop())
	return spy, monitor, NewClientSyncJob(spy, monitor, interval, logger.Nop())
}

func TestClientSyncJob_DrainsOnStartWhenOnline(t *testing.T) {
	spy, _, job := newTestJob(true, 0)

	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_DrainsOnReconnect(t *testing.T) {
	spy, monitor, job := newTestJob(false, 0)

	job.Start(context.Background())
	defer job.Stop()

	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, spy.calls.Load())

	monitor.SetOnline(true)
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	monitor.SetOnline(false)
	monitor.SetOnline(true)
	assert.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_TriggerIsIgnoredOffline(t *testing.T) {
	spy, _, job := newTestJob(false, 0)

	job.Start(context.Background())
	defer job.Stop()

	job.Trigger()
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, spy.calls.Load())
}

func TestClientSyncJob_ManualTrigger(t *testing.T) {
	spy, _, job := newTestJob(true, 0)

	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Trigger()
	assert.Eventually(t, func() bool { return spy.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_Interval(t *testing.T) {
	spy, _, job := newTestJob(true, 10*time.Millisecond)

	job.Start(context.Background())
	defer job.Stop()

	assert.Eventually(t, func() bool { return spy.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_StopUnsubscribes(t *testing.T) {
	spy, monitor, job := newTestJob(true, 0)

	job.Start(context.Background())
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	job.Stop()

	monitor.SetOnline(false)
	monitor.SetOnline(true)
	job.Trigger()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), spy.calls.Load())
}

func TestClientSyncJob_ContextCancelStopsLoop(t *testing.T) {
	spy, monitor, job := newTestJob(false, 0)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx)
	cancel()
	time.Sleep(20 * time.Millisecond)

	monitor.SetOnline(true)
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, spy.calls.Load())

	job.Stop()
}

func TestClientSyncJob_RestartReplacesRunningJob(t *testing.T) {
	spy, monitor, job := newTestJob(false, 0)

	job.Start(context.Background())
	job.Start(context.Background())
	defer job.Stop()

	monitor.SetOnline(true)
	assert.Eventually(t, func() bool { return spy.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), spy.calls.Load())
}

func TestClientSyncJob_StopBeforeStart(t *testing.T) {
	_, _, job := newTestJob(true, 0)
	assert.NotPanics(t, job.Stop)
	assert.NotPanics(t, job.Trigger)
}
