package engine

import "sync"

// ManualFrameScheduler dispatches requested frames only when Fire is called
type ManualFrameScheduler struct {
	mu       sync.Mutex
	provider TimeProvider
	queue    frameQueue
}

// NewManualFrameScheduler creates a scheduler stamping frames with provider time
func NewManualFrameScheduler(provider TimeProvider) *ManualFrameScheduler {
	return &ManualFrameScheduler{provider: provider}
}

type manualHandle struct {
	ms *ManualFrameScheduler
	id uint64
}

func (h *manualHandle) Cancel() {
	h.ms.mu.Lock()
	defer h.ms.mu.Unlock()
	h.ms.queue.remove(h.id)
}

// RequestFrame queues cb until the next Fire
func (ms *ManualFrameScheduler) RequestFrame(cb FrameCallback) FrameHandle {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return &manualHandle{ms: ms, id: ms.queue.push(cb)}
}

// Pending returns the number of queued callbacks
func (ms *ManualFrameScheduler) Pending() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.queue.entries)
}

// Fire dispatches every callback queued before the call and returns how many ran
func (ms *ManualFrameScheduler) Fire() int {
	ms.mu.Lock()
	entries := ms.queue.take()
	ms.mu.Unlock()

	now := ms.provider.Now()
	for _, e := range entries {
		e.cb(now)
	}
	return len(entries)
}

// Take dequeues callbacks without running them, as a dispatcher does just before invoking them
func (ms *ManualFrameScheduler) Take() []FrameCallback {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	entries := ms.queue.take()
	cbs := make([]FrameCallback, len(entries))
	for i, e := range entries {
		cbs[i] = e.cb
	}
	return cbs
}
