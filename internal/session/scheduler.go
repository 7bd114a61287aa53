package session

import (
	"context"
	"time"
)

// Timer is a tick rate and the instant it last fired.
type Timer struct {
	TickRate   time.Duration
	LastUpdate time.Time
}

// Scheduler turns elapsed timer periods into TimeoutTick events. It never
// touches session state; it only enqueues.
type Scheduler struct {
	timers     [timeoutTypes]*Timer
	send       func(Event)
	resolution time.Duration
}

func NewScheduler(rates map[TimeoutType]time.Duration, send func(Event)) *Scheduler {
	sc := &Scheduler{send: send, resolution: 50 * time.Millisecond}
	now := time.Now()
	for t, rate := range rates {
		if rate <= 0 || t >= timeoutTypes {
			continue
		}
		sc.timers[t] = &Timer{TickRate: rate, LastUpdate: now}
		if half := rate / 2; half < sc.resolution {
			sc.resolution = max(half, 10*time.Millisecond)
		}
	}
	return sc
}

// Run polls the timers until ctx ends.
func (sc *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(sc.resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sc.poll(now)
		}
	}
}

func (sc *Scheduler) poll(now time.Time) {
	for t, tm := range sc.timers {
		if tm == nil || now.Sub(tm.LastUpdate) < tm.TickRate {
			continue
		}
		tm.LastUpdate = now
		sc.send(TimeoutTick{Type: TimeoutType(t)})
	}
}
