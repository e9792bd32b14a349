package event

import "sync"

var (
	nameToType   = make(map[string]EventType)
	typeToName   = make(map[EventType]string)
	registryOnce sync.Once
)

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	InitRegistry()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	InitRegistry()
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "Unknown"
}

// InitRegistry populates the registry with all lifecycle events, safe to call repeatedly
func InitRegistry() {
	registryOnce.Do(func() {
		// Race events
		RegisterType("EventRaceReset", EventRaceReset)
		RegisterType("EventRaceStart", EventRaceStart)
		RegisterType("EventRaceStop", EventRaceStop)
		RegisterType("EventRaceFinish", EventRaceFinish)

		// Capture events
		RegisterType("EventCaptureStart", EventCaptureStart)
		RegisterType("EventCaptureStop", EventCaptureStop)
		RegisterType("EventCaptureFinalized", EventCaptureFinalized)
	})
}
