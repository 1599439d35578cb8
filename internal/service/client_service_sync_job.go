package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/edu-offline/internal/logger"
)

type clientSyncJob struct {
	orchestrator SyncOrchestrator
	conn         Connectivity
	interval     time.Duration
	logger       *logger.Logger

	mu          sync.Mutex
	cancel      context.CancelFunc
	unsubscribe func()
	trigger     chan struct{}
	wg          sync.WaitGroup
}

// NewClientSyncJob creates a clientSyncJob that drains the queue whenever
// conn goes online. A positive interval adds a periodic drain while online.
// The job is idle until Start is called.
func NewClientSyncJob(orchestrator SyncOrchestrator, conn Connectivity, interval time.Duration, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		orchestrator: orchestrator,
		conn:         conn,
		interval:     interval,
		logger:       logger,
	}
}

// Start implements ClientSyncJob. It stops any previously running job, then
// launches a background goroutine that drains on every trigger. A drain is
// requested immediately when conn is already online. The goroutine exits
// when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	trigger := make(chan struct{}, 1)
	j.cancel = cancel
	j.trigger = trigger
	j.unsubscribe = j.conn.Subscribe(func(online bool) {
		if online {
			kick(trigger)
		}
	})
	j.wg.Add(1)
	j.mu.Unlock()

	if j.conn.Online() {
		kick(trigger)
	}

	go func() {
		defer j.wg.Done()

		var tick <-chan time.Time
		if j.interval > 0 {
			t := time.NewTicker(j.interval)
			defer t.Stop()
			tick = t.C
		}

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-trigger:
				j.run(jobCtx)
			case <-tick:
				j.run(jobCtx)
			}
		}
	}()
}

// Trigger implements ClientSyncJob. Triggers that arrive while a drain is
// running collapse into one follow-up drain.
func (j *clientSyncJob) Trigger() {
	j.mu.Lock()
	trigger := j.trigger
	j.mu.Unlock()

	if trigger != nil {
		kick(trigger)
	}
}

// Stop implements ClientSyncJob. It cancels the background goroutine's context and
// blocks until the goroutine has fully exited. Safe to call when the job is not
// running (no-op in that case).
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	unsubscribe := j.unsubscribe
	j.cancel = nil
	j.unsubscribe = nil
	j.trigger = nil
	j.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) run(ctx context.Context) {
	if ctx.Err() != nil || !j.conn.Online() {
		return
	}

	report, err := j.orchestrator.Drain(ctx)
	if err != nil {
		event := j.logger.Err(err)
		if errors.Is(err, ErrDrainAborted) {
			event = j.logger.Warn().Err(err)
		}
		event.Str("func", "clientSyncJob.run").
			Int("remaining", report.Remaining).
			Msg("sync drain did not complete")
		return
	}
	if report.Drained > 0 {
		j.logger.Info().
			Str("func", "clientSyncJob.run").
			Int("drained", report.Drained).
			Msg("sync drain completed")
	}
}

func kick(trigger chan struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}
