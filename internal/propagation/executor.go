// Package propagation synchronizes the search index and the build
// queue with the primary store after a committed write.
package propagation

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pleygg/content-api/internal/buildqueue"
	"github.com/pleygg/content-api/internal/search"
)

// Decision is the side-effect set a state transition produced. At most
// one of Upsert/DeleteID is set; Enqueue may accompany either.
type Decision struct {
	Upsert   *search.Document
	DeleteID uuid.UUID
	Enqueue  *buildqueue.Message
}

// IsZero reports whether the decision carries no side effects.
func (d Decision) IsZero() bool {
	return d.Upsert == nil && d.DeleteID == uuid.Nil && d.Enqueue == nil
}

// Executor performs the downstream calls. It runs strictly after the
// primary write commits: the index op first (the build consumer reads
// the freshly updated index), then the queue op. Each call is
// attempted even if the other fails; there is no compensating rollback
// of the primary write. Failures land in the reconciliation log for an
// external repair job.
type Executor struct {
	index     search.Index
	queue     buildqueue.Queue
	reconcile Recorder
}

func NewExecutor(index search.Index, queue buildqueue.Queue, reconcile Recorder) *Executor {
	if reconcile == nil {
		reconcile = NopRecorder{}
	}
	return &Executor{index: index, queue: queue, reconcile: reconcile}
}

// Propagate executes the decision. The returned error reports partial
// failure for observability; callers must not surface it as operation
// failure, since the primary record is already correct.
func (e *Executor) Propagate(ctx context.Context, d Decision) error {
	var errs []error

	if d.Upsert != nil {
		if err := e.index.Upsert(ctx, *d.Upsert); err != nil {
			slog.Error("failed to upsert search index", "id", d.Upsert.ObjectID, "error", err)
			e.record(ctx, Entry{Op: "index-upsert", ObjectID: d.Upsert.ObjectID, Reason: err.Error()})
			errs = append(errs, err)
		}
	}
	if d.DeleteID != uuid.Nil {
		if err := e.index.Delete(ctx, d.DeleteID); err != nil {
			slog.Error("failed to delete from search index", "id", d.DeleteID, "error", err)
			e.record(ctx, Entry{Op: "index-delete", ObjectID: d.DeleteID.String(), Reason: err.Error()})
			errs = append(errs, err)
		}
	}

	if d.Enqueue != nil {
		if err := e.queue.Enqueue(ctx, *d.Enqueue); err != nil {
			slog.Error("failed to enqueue build event", "event", d.Enqueue.Event, "item", d.Enqueue.ItemID, "error", err)
			e.record(ctx, Entry{Op: "build-enqueue", ObjectID: d.Enqueue.ItemID, Event: string(d.Enqueue.Event), Reason: err.Error()})
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (e *Executor) record(ctx context.Context, entry Entry) {
	if err := e.reconcile.Record(ctx, entry); err != nil {
		slog.Error("failed to record reconciliation entry", "op", entry.Op, "id", entry.ObjectID, "error", err)
	}
}
