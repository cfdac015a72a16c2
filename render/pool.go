// Package render runs artifact generation on a bounded worker pool so a burst
// of conversations cannot pile unbounded encode work onto the process.
package render

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m3rciful/themebot/logger"
)

var (
	// ErrPoolClosed is returned when submit is attempted after pool stop.
	ErrPoolClosed = errors.New("render: pool closed")
	// ErrPoolFull indicates the queue is saturated and the job was not accepted.
	ErrPoolFull = errors.New("render: queue full")
)

// Options controls the behaviour of the render pool.
type Options struct {
	QueueSize int
	Workers   int
	// MaxDuration bounds the time a single job may spend rendering.
	MaxDuration time.Duration
}

type job struct {
	ctx    context.Context
	id     string
	name   string
	run    func(ctx context.Context) error
	result chan error
}

// Pool executes render jobs on a fixed set of workers. Unlike an outbound
// send queue, callers block until their job finishes: the handler needs the
// artifact before it can answer the callback.
type Pool struct {
	opts Options
	jobs chan job
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
	errs atomic.Uint64
}

// NewPool starts a pool with sane defaults if options are zeroed.
func NewPool(opts Options) *Pool {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 20 * time.Second
	}

	p := &Pool{
		opts: opts,
		jobs: make(chan job, opts.QueueSize),
		stop: make(chan struct{}),
	}

	p.wg.Add(opts.Workers)
	for i := 0; i < opts.Workers; i++ {
		go p.worker()
	}

	return p
}

// Do schedules run on the pool and waits for it to complete. The job inherits
// the caller's context; cancellation releases the caller even if the job is
// still queued.
func (p *Pool) Do(ctx context.Context, name string, run func(ctx context.Context) error) error {
	if run == nil {
		return errors.New("render: nil run function")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-p.stop:
		return ErrPoolClosed
	default:
	}

	j := job{
		ctx:    ctx,
		id:     uuid.NewString(),
		name:   name,
		run:    run,
		result: make(chan error, 1),
	}

	select {
	case p.jobs <- j:
	default:
		return ErrPoolFull
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ErrorCount returns the number of failed jobs.
func (p *Pool) ErrorCount() uint64 {
	return p.errs.Load()
}

// Close stops workers and waits for them to drain queued jobs.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.stop)
		close(p.jobs)
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.result <- p.handleJob(j)
	}
}

func (p *Pool) handleJob(j job) error {
	ctx := j.ctx
	if err := ctx.Err(); err != nil {
		return err
	}

	deadlineCtx, cancel := context.WithTimeout(ctx, p.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	logger.Debug(ctx, "render", "job.start", jobLogAttrs(ctx, j)...)

	err := j.run(deadlineCtx)
	elapsed := time.Since(start)
	if err != nil {
		p.errs.Add(1)
		logger.Error(ctx, "render", "job.fail",
			append(jobLogAttrs(ctx, j),
				slog.String("error", err.Error()),
				slog.Int("elapsed_ms", durationToMS(elapsed)),
			)...,
		)
		return err
	}

	logger.Debug(ctx, "render", "job.success",
		append(jobLogAttrs(ctx, j),
			slog.Int("elapsed_ms", durationToMS(elapsed)),
		)...,
	)
	return nil
}

func jobLogAttrs(ctx context.Context, j job) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("job_id", j.id),
		slog.String("job", j.name),
	}
	if rid := logger.RIDFrom(ctx); rid != "" {
		attrs = append(attrs, slog.String("rid", rid))
	}
	if chatID := logger.ChatIDFrom(ctx); chatID != 0 {
		attrs = append(attrs, slog.Int64("chat_id", chatID))
	}
	if userID := logger.UserIDFrom(ctx); userID != 0 {
		attrs = append(attrs, slog.Int64("user_id", userID))
	}
	return attrs
}

func durationToMS(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(logger.RoundMS(d) / time.Millisecond)
}
