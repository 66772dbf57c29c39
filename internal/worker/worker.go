// Package worker runs the periodic auction jobs: publishing scheduled
// auctions and, when enabled, closing expired ones.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Jobs is the part of the auction service the worker drives.
type Jobs interface {
	ActivateDue(ctx context.Context) (int, error)
	CloseExpired(ctx context.Context) (int, error)
}

type Worker struct {
	jobs            Jobs
	publishInterval time.Duration
	sweepInterval   time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// New returns a worker; a zero sweepInterval disables the expiry sweep.
func New(jobs Jobs, publishInterval, sweepInterval time.Duration) *Worker {
	return &Worker{
		jobs:            jobs,
		publishInterval: publishInterval,
		sweepInterval:   sweepInterval,
		stopChan:        make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	if w.publishInterval > 0 {
		w.wg.Add(1)
		go w.loop(ctx, "publish", w.publishInterval, w.jobs.ActivateDue)
	}
	if w.sweepInterval > 0 {
		w.wg.Add(1)
		go w.loop(ctx, "sweep", w.sweepInterval, w.jobs.CloseExpired)
	}
	logrus.WithFields(logrus.Fields{
		"publish_interval": w.publishInterval,
		"sweep_interval":   w.sweepInterval,
	}).Info("auction worker started")
}

// Stop ends both loops and waits for the current run to finish.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
	logrus.Info("auction worker stopped")
}

func (w *Worker) loop(ctx context.Context, stage string, every time.Duration, job func(context.Context) (int, error)) {
	defer w.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	w.run(ctx, stage, job)
	for {
		select {
		case <-ticker.C:
			w.run(ctx, stage, job)
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) run(ctx context.Context, stage string, job func(context.Context) (int, error)) {
	n, err := job(ctx)
	log := logrus.WithField("stage", stage)
	if err != nil {
		log.WithError(err).Warn("auction job failed")
		return
	}
	if n > 0 {
		log.WithField("count", n).Info("auction job done")
	}
}
