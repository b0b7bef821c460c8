// Package fanout runs a batch of independent jobs concurrently and waits
// for every one to settle, success or failure. Recoverable failures are
// retried with exponential backoff; irrecoverable ones fail fast.
//
// This is checkout's fan-out/fan-in point: one job per cart line, outcomes
// classified by the caller from the per-job results.
package fanout

import (
	"context"
	"fmt"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	errs "github.com/reservat/storefront-go/internal/errors"
)

var (
	jobsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "fanout_jobs_total",
		Help:      "Jobs submitted to the settle pool.",
	})
	jobFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "reservat_storefront",
		Name:      "fanout_job_failures_total",
		Help:      "Jobs whose final attempt returned an error or panicked.",
	})
)

// Job is one unit of work.
type Job func(ctx context.Context) error

// Config tunes the pool. Zero values get defaults.
type Config struct {
	Workers     int           // concurrent jobs cap (default 4)
	MaxAttempts int           // total attempts per job (default 3)
	BaseBackoff time.Duration // first retry delay (default 100ms)
	MaxInterval time.Duration // backoff ceiling (default 2s)
}

// Pool executes batches under one Config. A Pool is stateless between
// batches and safe for concurrent use.
type Pool struct {
	cfg Config
	log zerolog.Logger
}

// New constructs a Pool, applying zero-value defaults.
func New(cfg Config, log zerolog.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 2 * time.Second
	}
	return &Pool{cfg: cfg, log: log}
}

// Settle runs every job and blocks until all have settled. The returned
// slice is index-aligned with jobs: nil for success, the final error
// otherwise. Settle itself never fails; cancellation surfaces as per-job
// context errors.
func (p *Pool) Settle(ctx context.Context, jobs []Job) []error {
	results := make([]error, len(jobs))
	sem := make(chan struct{}, p.cfg.Workers)
	var wg sync.WaitGroup

	for i, j := range jobs {
		wg.Add(1)
		jobsTotal.Inc()
		go func(idx int, job Job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = p.runWithRetry(ctx, idx, job)
			if results[idx] != nil {
				jobFailuresTotal.Inc()
			}
		}(i, j)
	}

	wg.Wait()
	return results
}

func (p *Pool) runWithRetry(ctx context.Context, idx int, job Job) (err error) {
	// A panicking job settles as a failure instead of killing the batch.
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Int("job", idx).Msg("fanout job panicked")
			err = &errs.ClassifiedError{
				Category:   errs.Irrecoverable,
				Underlying: fmt.Errorf("job panic: %v", r),
			}
		}
	}()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = p.cfg.MaxInterval
	exp.Reset()

	for attempt := 1; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		err = job(ctx)
		if err == nil {
			return nil
		}
		if errs.IsIrrecoverable(err) {
			return err
		}
		if attempt >= p.cfg.MaxAttempts {
			return err
		}
		p.log.Debug().Err(err).Int("job", idx).Int("attempt", attempt).Msg("fanout job retrying")
		select {
		case <-time.After(exp.NextBackOff()):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
