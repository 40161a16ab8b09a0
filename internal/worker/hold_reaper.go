package worker

import (
	"context"
	"log"
	"time"
)

type expirer interface {
	Execute(ctx context.Context) (int, error)
}

// HoldReaper periodically releases expired holds until ctx is cancelled.
type HoldReaper struct {
	uc       expirer
	interval time.Duration
}

func NewHoldReaper(uc expirer, interval time.Duration) *HoldReaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &HoldReaper{uc: uc, interval: interval}
}

func (r *HoldReaper) Run(ctx context.Context) {
	log.Printf("[reaper] started, interval=%s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[reaper] stopped")
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *HoldReaper) tick(ctx context.Context) {
	n, err := r.uc.Execute(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Println("[reaper] release expired holds:", err)
		}
		return
	}
	if n > 0 {
		log.Printf("[reaper] released %d expired holds", n)
	}
}
