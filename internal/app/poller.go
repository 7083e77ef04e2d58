package app

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"

	"github.com/five82/listsync/internal/buffer"
	"github.com/five82/listsync/internal/source"
	"github.com/five82/listsync/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// Poller is the single goroutine that owns the buffer. It fetches the
// complete list from the source and submits it; the buffer works out what
// changed.
type Poller struct {
	Source   source.Source
	Buffer   *buffer.Buffer[string]
	Store    *state.Store
	Interval time.Duration
	// Events triggers an immediate fetch when signalled. Optional.
	Events <-chan struct{}

	failures int
}

// Start launches Run on a new goroutine. The returned channel is closed once
// the poller has flushed and closed the buffer.
func (p *Poller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	return done
}

// Run fetches until ctx is cancelled, then flushes and closes the buffer.
func (p *Poller) Run(ctx context.Context) {
	defer p.shutdown()

	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	events := p.Events

	for {
		p.refresh(ctx)

		timer := time.NewTimer(calculateBackoff(p.failures, interval))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		case _, ok := <-events:
			timer.Stop()
			if !ok {
				events = nil
			}
		}
	}
}

// Once performs a single fetch, then flushes and closes the buffer.
func (p *Poller) Once(ctx context.Context) error {
	defer p.shutdown()
	return p.refresh(ctx)
}

func (p *Poller) refresh(ctx context.Context) error {
	items, err := p.Source.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return err
		}
		p.failures++
		p.Store.RecordError(err)
		glog.Warningf("[source] fetch %s failed (%d in a row): %v", p.Source.Describe(), p.failures, err)
		return err
	}
	if glog.V(2) {
		glog.Infof("[source] fetched %d items from %s", len(items), p.Source.Describe())
	}
	p.failures = 0
	p.Buffer.Submit(items)
	p.Store.RecordSuccess()
	return nil
}

func (p *Poller) shutdown() {
	p.Buffer.Flush()
	p.Buffer.Close()
	glog.Infof("[source] poller for %s stopped", p.Source.Describe())
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
