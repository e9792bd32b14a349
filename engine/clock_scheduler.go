package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/racecast/core"
	"github.com/lixenwraith/racecast/parameter"
)

// ClockScheduler dispatches requested frames on a drift-corrected clock
// All callbacks run on one goroutine, in request order; a callback requesting a frame waits for the next tick
type ClockScheduler struct {
	provider TimeProvider
	interval time.Duration

	mu    sync.Mutex
	queue frameQueue

	frameCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewClockScheduler creates a scheduler ticking every interval
func NewClockScheduler(provider TimeProvider, interval time.Duration) *ClockScheduler {
	if interval <= 0 {
		interval = parameter.FrameUpdateInterval
	}
	return &ClockScheduler{
		provider: provider,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

type clockHandle struct {
	cs *ClockScheduler
	id uint64
}

// Cancel removes the callback if it has not been dispatched yet
func (h *clockHandle) Cancel() {
	h.cs.mu.Lock()
	defer h.cs.mu.Unlock()
	h.cs.queue.remove(h.id)
}

// RequestFrame queues cb for the next tick
func (cs *ClockScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return &clockHandle{cs: cs, id: cs.queue.push(cb)}
}

// Start begins the tick loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the tick loop and waits for the in-flight dispatch to return
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// FrameCount returns the number of ticks that dispatched at least one callback
func (cs *ClockScheduler) FrameCount() uint64 {
	return cs.frameCount.Load()
}

func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	deadline := cs.provider.Now().Add(cs.interval)

	timer := time.NewTimer(cs.interval)
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		case <-timer.C:
		}

		now := cs.provider.Now()
		if !now.Before(deadline) {
			cs.dispatch(now)

			deadline = deadline.Add(cs.interval)
			// Skip ahead after a stall instead of bursting to catch up
			if now.Sub(deadline) > cs.interval*parameter.FrameStallFactor {
				deadline = now.Add(cs.interval)
			}
		}

		sleep := deadline.Sub(cs.provider.Now())
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

func (cs *ClockScheduler) dispatch(now time.Time) {
	cs.mu.Lock()
	entries := cs.queue.take()
	cs.mu.Unlock()

	if len(entries) == 0 {
		return
	}
	for _, e := range entries {
		e.cb(now)
	}
	cs.frameCount.Add(1)
}
