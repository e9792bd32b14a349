package asset

// RaceRegion is the region name of the race lifecycle machine
const RaceRegion = "race"

// CaptureRegion is the region name of the capture lifecycle machine
const CaptureRegion = "capture"

// DefaultRaceFSMConfig returns the default race lifecycle FSM TOML configuration
const DefaultRaceFSMConfig = `

# === Race lifecycle ===
[regions]
race = { initial = "Idle" }

# Reset is allowed from every state
[states.Race]
parent = "Root"
transitions = [
    { trigger = "EventRaceReset", target = "Idle" },
]

# A race needs a field and a boundary past the start line
[states.Idle]
parent = "Race"
transitions = [
    { trigger = "EventRaceStart", target = "Running", guard = "FieldReady" },
]

# Exactly one frame callback is outstanding while Running
[states.Running]
parent = "Race"
on_enter = [
    { action = "ArmFrame" },
]
on_exit = [
    { action = "DisarmFrame" },
]
transitions = [
    { trigger = "EventRaceStop", target = "Idle" },
    { trigger = "EventRaceFinish", target = "Finished" },
]

# Start is ignored until the next reset
[states.Finished]
parent = "Race"
`

// DefaultCaptureFSMConfig returns the default capture lifecycle FSM TOML configuration
const DefaultCaptureFSMConfig = `

# === Capture lifecycle ===
[regions]
capture = { initial = "Idle" }

[states.Capture]
parent = "Root"

[states.Idle]
parent = "Capture"
transitions = [
    { trigger = "EventCaptureStart", target = "Recording" },
]

[states.Recording]
parent = "Capture"
on_exit = [
    { action = "DetachSink" },
]
transitions = [
    { trigger = "EventCaptureStop", target = "Stopped" },
]

# Finalization of the last session may still be in flight
[states.Stopped]
parent = "Capture"
transitions = [
    { trigger = "EventCaptureStart", target = "Recording" },
]
`
