package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/racecast/event"
)

// Cue is a short sound tied to a race or recording transition
type Cue int

const (
	CueNone Cue = iota
	CueStart
	CueFinish
	CueRecord
	CueStopRecord
)

var cueNames = map[Cue]string{
	CueNone:       "none",
	CueStart:      "start",
	CueFinish:     "finish",
	CueRecord:     "record",
	CueStopRecord: "stop_record",
}

func (c Cue) String() string {
	if s, ok := cueNames[c]; ok {
		return s
	}
	return "unknown"
}

// CueFor maps an event to the cue it plays
func CueFor(et event.EventType) (Cue, bool) {
	switch et {
	case event.EventRaceStart:
		return CueStart, true
	case event.EventRaceFinish:
		return CueFinish, true
	case event.EventCaptureStart:
		return CueRecord, true
	case event.EventCaptureStop:
		return CueStopRecord, true
	}
	return CueNone, false
}

// Streamer builds a fresh finite streamer for the cue, nil for CueNone
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueStart:
		// Two low lights then a high go
		return beep.Seq(
			tone(440, 120*time.Millisecond, WaveSquare, rate),
			rest(80*time.Millisecond, rate),
			tone(440, 120*time.Millisecond, WaveSquare, rate),
			rest(80*time.Millisecond, rate),
			tone(880, 240*time.Millisecond, WaveSquare, rate),
		)
	case CueFinish:
		return beep.Mix(
			beep.Seq(
				tone(523.25, 150*time.Millisecond, WaveSine, rate),
				tone(659.25, 150*time.Millisecond, WaveSine, rate),
				tone(783.99, 300*time.Millisecond, WaveSine, rate),
			),
			newVolume(tone(261.63, 600*time.Millisecond, WaveSaw, rate), 0.3),
		)
	case CueRecord:
		return tone(1200, 80*time.Millisecond, WaveSine, rate)
	case CueStopRecord:
		return beep.Seq(
			tone(900, 60*time.Millisecond, WaveSine, rate),
			rest(40*time.Millisecond, rate),
			tone(600, 90*time.Millisecond, WaveSine, rate),
		)
	}
	return nil
}
