package workers

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-six-notes/internal/logger"
	"golang.org/x/sync/errgroup"
)

type named struct {
	name   string
	worker Worker
}

type Workers struct {
	workers []named
	logger  *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers a worker under name. Workers are started in the order they
// were added.
func (w *Workers) Add(name string, worker Worker) *Workers {
	w.workers = append(w.workers, named{name: name, worker: worker})
	return w
}

// Run starts every worker and blocks until all of them return. The first
// worker to fail cancels the others; its error is returned. A stop caused by
// ctx is not an error.
func (w *Workers) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, nw := range w.workers {
		g.Go(func() error {
			w.logger.Debug().Str("worker", nw.name).Msg("worker started")
			err := nw.worker.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Err(err).Str("worker", nw.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", nw.name, err)
			}
			w.logger.Debug().Str("worker", nw.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}
