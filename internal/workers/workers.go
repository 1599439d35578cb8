package workers

import "context"

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws. Nil workers are skipped, so optional workers can be
// passed unconditionally.
func NewWorkers(ws ...Worker) *Workers {
	group := &Workers{}
	for _, w := range ws {
		if w != nil {
			group.workers = append(group.workers, w)
		}
	}
	return group
}

// Start starts the workers in registration order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse registration order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
