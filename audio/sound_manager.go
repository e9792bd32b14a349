package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/event"
)

const (
	sampleRate = beep.SampleRate(48000)
	humFreq    = 55.0
)

// Player plays race cues; implementations must be safe for concurrent use
type Player interface {
	Play(c Cue)
	OnEvent(et event.EventType)
	Cleanup()
}

// NopPlayer discards all cues
type NopPlayer struct{}

func (NopPlayer) Play(Cue)                {}
func (NopPlayer) OnEvent(event.EventType) {}
func (NopPlayer) Cleanup()                {}

// SoundManager mixes race cues onto the system speaker
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	hum         *beep.Ctrl
	volume      float64
	initialized bool
	log         *zap.Logger

	// Overridable for headless tests
	speakerInit func(beep.SampleRate, int) error
	speakerPlay func(...beep.Streamer)
	lock        func()
	unlock      func()
}

// NewSoundManager creates a sound manager at the given linear volume
func NewSoundManager(volume float64, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{
		mixer:       &beep.Mixer{},
		volume:      volume,
		log:         log,
		speakerInit: speaker.Init,
		speakerPlay: speaker.Play,
		lock:        speaker.Lock,
		unlock:      speaker.Unlock,
	}
}

// Initialize opens the speaker; a second call is a no-op
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := sm.speakerInit(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	sm.speakerPlay(newVolume(sm.mixer, sm.volume))
	sm.initialized = true
	return nil
}

// Cleanup silences everything; the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	if sm.hum != nil {
		sm.hum.Paused = true
		sm.hum = nil
	}
	sm.mixer.Clear()
	sm.unlock()

	sm.initialized = false
}

// Play queues a one-shot cue
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := c.Streamer(sampleRate)
	if s == nil {
		return
	}

	sm.lock()
	sm.mixer.Add(s)
	sm.unlock()
	sm.log.Debug("cue", zap.Stringer("cue", c))
}

// StartEngine starts the looping engine drone if not already running
func (sm *SoundManager) StartEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.hum != nil && !sm.hum.Paused {
		return
	}

	ctrl := &beep.Ctrl{Streamer: newEngineHum(sampleRate, humFreq)}
	sm.lock()
	sm.mixer.Add(ctrl)
	sm.unlock()
	sm.hum = ctrl
}

// StopEngine pauses the engine drone
func (sm *SoundManager) StopEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.hum == nil {
		return
	}
	// A nil streamer drains the ctrl out of the mixer
	sm.lock()
	sm.hum.Paused = true
	sm.hum.Streamer = nil
	sm.unlock()
	sm.hum = nil
}

// EngineRunning reports whether the drone is playing
func (sm *SoundManager) EngineRunning() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.hum != nil && !sm.hum.Paused
}

// OnEvent plays the cue for et and drives the engine drone
func (sm *SoundManager) OnEvent(et event.EventType) {
	switch et {
	case event.EventRaceStart:
		sm.StartEngine()
	case event.EventRaceStop, event.EventRaceFinish, event.EventRaceReset:
		sm.StopEngine()
	}
	if c, ok := CueFor(et); ok {
		sm.Play(c)
	}
}
