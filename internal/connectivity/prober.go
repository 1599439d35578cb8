package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/edu-offline/internal/logger"
)

// HealthChecker reports whether the remote side answers. Any error means
// unreachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Prober feeds a Monitor from periodic health checks.
type Prober struct {
	checker  HealthChecker
	monitor  *Monitor
	interval time.Duration
	timeout  time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewProber returns a Prober checking every interval. A non-positive
// interval makes Start a no-op.
func NewProber(checker HealthChecker, monitor *Monitor, interval time.Duration, logger *logger.Logger) *Prober {
	timeout := interval / 2
	if timeout <= 0 || timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	return &Prober{
		checker:  checker,
		monitor:  monitor,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

// Probe runs one health check and records the result.
// A check cut short by ctx itself is not recorded.
func (p *Prober) Probe(parent context.Context) bool {
	ctx, cancel := context.WithTimeout(parent, p.timeout)
	defer cancel()

	err := p.checker.Health(ctx)
	if parent.Err() != nil {
		return p.monitor.Online()
	}
	if err != nil {
		p.logger.Debug().Err(err).Str("func", "Prober.Probe").Msg("remote health check failed")
	}

	online := err == nil
	p.monitor.SetOnline(online)
	return online
}

// Start probes once right away and then every interval until ctx is done or
// Stop is called.
func (p *Prober) Start(ctx context.Context) {
	if p.interval <= 0 {
		return
	}

	p.Stop()

	p.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		p.Probe(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				p.Probe(jobCtx)
			}
		}
	}()
}

// Stop cancels the probing goroutine and waits for it to exit.
func (p *Prober) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}
