package engine

import "time"

// FrameCallback runs once per requested frame with the frame timestamp
type FrameCallback func(now time.Time)

// FrameHandle cancels a requested frame that has not yet been dispatched
type FrameHandle interface {
	Cancel()
}

// FrameScheduler is the frame-scheduling primitive driving the race loop
// A callback never runs synchronously inside RequestFrame
type FrameScheduler interface {
	RequestFrame(cb FrameCallback) FrameHandle
}

type frameEntry struct {
	id uint64
	cb FrameCallback
}

// frameQueue holds requested callbacks in request order
type frameQueue struct {
	nextID  uint64
	entries []frameEntry
}

func (q *frameQueue) push(cb FrameCallback) uint64 {
	q.nextID++
	q.entries = append(q.entries, frameEntry{id: q.nextID, cb: cb})
	return q.nextID
}

func (q *frameQueue) remove(id uint64) {
	for i, e := range q.entries {
		if e.id == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// take removes and returns every queued callback
func (q *frameQueue) take() []frameEntry {
	out := q.entries
	q.entries = nil
	return out
}
