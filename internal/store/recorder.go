package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultRecorderBuffer is the queue length used when none is configured.
const DefaultRecorderBuffer = 256

// Recorder queues journal records and writes them on its own goroutine,
// so callers never wait on the database.
type Recorder struct {
	journal Journal
	queue   chan Record
	log     *zerolog.Logger
}

// NewRecorder creates a recorder in front of journal.
func NewRecorder(journal Journal, buffer int, logger *zerolog.Logger) *Recorder {
	if buffer <= 0 {
		buffer = DefaultRecorderBuffer
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Recorder{
		journal: journal,
		queue:   make(chan Record, buffer),
		log:     logger,
	}
}

// Record enqueues rec. It never blocks; when the queue is full rec is dropped.
func (r *Recorder) Record(rec Record) bool {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	select {
	case r.queue <- rec:
		return true
	default:
		r.log.Warn().
			Str("kind", string(rec.Kind)).
			Uint64("room_id", rec.RoomID).
			Msg("journal queue full, record dropped")
		return false
	}
}

// Run drains the queue until ctx is cancelled, then flushes what is left.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case rec := <-r.queue:
			r.write(ctx, rec)
		case <-ctx.Done():
			r.flush()
			return nil
		}
	}
}

func (r *Recorder) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for {
		select {
		case rec := <-r.queue:
			r.write(ctx, rec)
		default:
			return
		}
	}
}

func (r *Recorder) write(ctx context.Context, rec Record) {
	if err := r.journal.Append(ctx, rec); err != nil {
		r.log.Warn().Err(err).
			Str("kind", string(rec.Kind)).
			Uint64("room_id", rec.RoomID).
			Msg("failed to append journal record")
	}
}
