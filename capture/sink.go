package capture

import (
	"errors"
)

// ErrCaptureUnavailable is returned when a capture sink cannot be created for the surface
var ErrCaptureUnavailable = errors.New("capture unavailable")

// ErrNoArtifact is returned by artifact accessors when nothing has been recorded
var ErrNoArtifact = errors.New("no capture artifact")

// EmitFunc receives one encoded segment; the receiver takes ownership of seg
type EmitFunc func(seg []byte)

// DoneFunc is called exactly once after the last segment, with the finalization error if any
type DoneFunc func(err error)

// Sink is a live capture attached to the drawing surface
type Sink interface {
	// Stop requests finalization; it may return before DoneFunc runs
	Stop()
}

// SinkOpener creates sinks bound to one drawing surface
type SinkOpener interface {
	Open(emit EmitFunc, done DoneFunc) (Sink, error)
}
