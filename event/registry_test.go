package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRoundTrip(t *testing.T) {
	for _, et := range []EventType{
		EventRaceReset, EventRaceStart, EventRaceStop, EventRaceFinish,
		EventCaptureStart, EventCaptureStop, EventCaptureFinalized,
	} {
		name := GetEventName(et)
		got, ok := GetEventType(name)
		assert.True(t, ok, name)
		assert.Equal(t, et, got, name)
	}
}

func TestNamesAreExact(t *testing.T) {
	for _, name := range []string{"Tick", "eventracestart", "EventNone", ""} {
		_, ok := GetEventType(name)
		assert.False(t, ok, name)
	}
	assert.Equal(t, "Unknown", EventNone.String())
}

func TestUnknownEvent(t *testing.T) {
	_, ok := GetEventType("EventGoldSpawned")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", EventType(999).String())
}
