package importer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrQueueFull is returned when a job cannot be enqueued. The caller
// should tell the user to try again later, the job stays startable.
var ErrQueueFull = errors.New("the import queue is full")

// Queue hands job IDs from the HTTP layer to the background worker.
//
// It is a plain buffered channel: the request that starts an import
// returns as soon as the ID is enqueued, the actual processing happens
// out of band.
type Queue struct {
	jobs chan uuid.UUID
}

// NewQueue creates a queue holding up to size pending jobs.
func NewQueue(size int) *Queue {
	return &Queue{
		jobs: make(chan uuid.UUID, size),
	}
}

// Enqueue hands a job to the worker without blocking.
func (q *Queue) Enqueue(jobID uuid.UUID) error {
	select {
	case q.jobs <- jobID:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops the queue. Workers drain remaining jobs and exit.
func (q *Queue) Close() {
	close(q.jobs)
}

// Work consumes the queue until it is closed or the context is
// cancelled. Run it in its own goroutine.
//
// Processing errors are logged, not returned: a failed job is recorded
// on the job itself and must not take the worker down.
func (o *Orchestrator) Work(ctx context.Context, q *Queue) {
	for {
		select {
		case <-ctx.Done():
			return
		case jobID, ok := <-q.jobs:
			if !ok {
				return
			}

			_, err := o.Process(ctx, jobID)
			if err != nil {
				log.Error().Str("job", jobID.String()).Err(err).Msg("import worker")
			}
		}
	}
}
