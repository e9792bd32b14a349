package event

// EventType represents a lifecycle trigger consumed by the race and capture state machines
type EventType int

const (
	// EventNone is the zero value and triggers nothing
	EventNone EventType = iota

	// === Race Event ===

	// EventRaceReset regenerates track and field and returns the race to Idle
	// Trigger: reset command | Allowed from any race state
	EventRaceReset

	// EventRaceStart begins a race
	// Trigger: start command | Ignored while Running or Finished
	EventRaceStart

	// EventRaceStop halts a running race without clearing the rendered frame
	// Trigger: stop command | Ignored unless Running
	EventRaceStop

	// EventRaceFinish resolves the winner
	// Trigger: frame callback on first finish-line contact
	EventRaceFinish

	// === Capture Event ===

	// EventCaptureStart opens a capture session on the live surface
	// Trigger: startRecording command | Ignored while Recording
	EventCaptureStart

	// EventCaptureStop signals the sink to finalize
	// Trigger: stopRecording command | Ignored unless Recording
	EventCaptureStop

	// EventCaptureFinalized marks the artifact of the last stopped session as available
	// Trigger: sink finalization callback
	EventCaptureFinalized
)

// String returns the registered name of the event type
func (et EventType) String() string {
	return GetEventName(et)
}
