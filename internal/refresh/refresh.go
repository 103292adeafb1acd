// Package refresh owns the periodic re-scoring schedule: one repeating
// score-refresh job plus an optional coalesced immediate trigger.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/leadscore/pkg/logger"
)

// Job identities owned by the orchestrator.
const (
	repeatingJobID = "score_refresh"
	immediateJobID = "immediate_refresh"
)

// Job is the refresh callback. Errors are contained by the orchestrator:
// they are logged and never reach the scheduling loop, so one failed cycle
// cannot abort future firings.
type Job func(ctx context.Context) error

// Orchestrator drives the fetch-score-notify pipeline on a fixed cadence.
//
// Lifecycle is strictly stopped -> running -> stopped. Starting a running
// orchestrator is an error (it would duplicate timers); stopping cancels
// the repeating timer but lets an in-flight firing run to completion.
//
// Overlap policy: scheduled and immediate firings are serialized through a
// single run mutex. A cycle never overlaps another, so an immediate
// trigger racing the timer cannot produce duplicate hot-lead alerts; it
// simply runs after the in-flight cycle finishes.
type Orchestrator struct {
	job    Job
	logger logger.Logger

	mu       sync.Mutex
	interval time.Duration
	running  bool
	stop     chan struct{}
	done     chan struct{}

	// immediate carries at most one pending one-shot request; a second
	// request while one is pending replaces it (last-request-wins).
	immediate chan struct{}

	// reschedule carries at most one pending interval replacement for
	// the repeating job.
	reschedule chan time.Duration

	// runMu serializes job executions across the timer, the immediate
	// trigger, and RunNow.
	runMu sync.Mutex
}

// New creates a stopped orchestrator firing job every interval.
func New(interval time.Duration, job Job, opts ...Option) (*Orchestrator, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}
	if job == nil {
		return nil, ErrNilJob
	}

	o := &Orchestrator{
		job:        job,
		interval:   interval,
		immediate:  make(chan struct{}, 1),
		reschedule: make(chan time.Duration, 1),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.Get().Named("refresh")
	}
	return o, nil
}

// Start launches the repeating schedule. It fails with ErrAlreadyRunning
// on a running instance rather than silently stacking a second timer.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.running {
		return ErrAlreadyRunning
	}
	o.running = true
	o.stop = make(chan struct{})
	o.done = make(chan struct{})

	go o.loop(ctx, o.stop, o.done, o.interval)

	o.logger.Info(ctx, "started refresh schedule",
		logger.String("job", repeatingJobID),
		logger.Duration("interval", o.interval),
	)
	return nil
}

// Stop cancels the repeating timer and prevents further firings. An
// in-flight firing is allowed to finish; Stop returns once the loop has
// fully wound down.
func (o *Orchestrator) Stop() error {
	o.mu.Lock()
	if !o.running {
		o.mu.Unlock()
		return ErrNotRunning
	}
	stop, done := o.stop, o.done
	o.mu.Unlock()

	close(stop)
	<-done
	return nil
}

// Running reports whether the schedule is active.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Reschedule atomically replaces the repeating job's cadence. At most one
// repeating timer exists at any time; a pending replacement that has not
// been applied yet is itself replaced.
func (o *Orchestrator) Reschedule(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInterval, interval)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.interval = interval
	if !o.running {
		return nil
	}

	select {
	case <-o.reschedule:
	default:
	}
	o.reschedule <- interval
	return nil
}

// TriggerImmediate enqueues one off-cadence execution of the job. If an
// immediate request is already pending, the new request replaces it; rapid
// repeated triggers collapse into a single pending execution.
func (o *Orchestrator) TriggerImmediate() {
	select {
	case o.immediate <- struct{}{}:
	default:
		// A request is already pending under this job identity; the
		// new one replaces it rather than queueing a second run.
	}
}

// RunNow executes the job synchronously under the same serialization as
// scheduled firings and returns its error to the caller.
func (o *Orchestrator) RunNow(ctx context.Context) error {
	o.runMu.Lock()
	defer o.runMu.Unlock()
	return o.job(ctx)
}

func (o *Orchestrator) loop(ctx context.Context, stop, done chan struct{}, interval time.Duration) {
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case next := <-o.reschedule:
			ticker.Reset(next)
			o.logger.Info(ctx, "replaced refresh schedule",
				logger.String("job", repeatingJobID),
				logger.Duration("interval", next),
			)
		case <-ticker.C:
			o.fire(ctx, repeatingJobID)
		case <-o.immediate:
			o.fire(ctx, immediateJobID)
		}
	}
}

// fire runs one serialized execution and contains every failure mode, so
// the loop above keeps ticking no matter what the callback does.
func (o *Orchestrator) fire(ctx context.Context, jobID string) {
	o.runMu.Lock()
	defer o.runMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error(ctx, "refresh job panicked",
				logger.String("job", jobID),
				logger.Any("panic", r),
			)
		}
	}()

	if err := o.job(ctx); err != nil {
		o.logger.Error(ctx, "refresh job failed",
			logger.String("job", jobID),
			logger.Error(err),
		)
	}
}
