package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/asset"
	"github.com/lixenwraith/racecast/component"
	"github.com/lixenwraith/racecast/engine/fsm"
	"github.com/lixenwraith/racecast/event"
	"github.com/lixenwraith/racecast/parameter"
	"github.com/lixenwraith/racecast/physics"
	"github.com/lixenwraith/racecast/render"
	"github.com/lixenwraith/racecast/status"
	"github.com/lixenwraith/racecast/system"
	"github.com/lixenwraith/racecast/track"
)

// Painter draws one frame from read-only race data
type Painter interface {
	Paint(ctx render.RenderContext) error
	Resize(width, height int) error
}

// Sizer is implemented by painters that own their surface; its size wins over Options
type Sizer interface {
	Size() (width, height int)
}

// Listener observes accepted race commands and the state right after them
// Called outside the scheduler lock
type Listener func(et event.EventType, state RaceState)

// Options configures a Scheduler
type Options struct {
	Width, Height int // ignored when the painter is a Sizer with a usable surface
	Lanes         int
	Ranges        system.FieldRanges
	MaxFrameDelta time.Duration
	Seed          uint64 // 0 = random
	FSMConfigPath string // empty = embedded
	Fs            afero.Fs
}

type notice struct {
	et    event.EventType
	state RaceState
}

// Scheduler owns the race lifecycle and drives the per-frame loop
// All state is guarded by mu; frame callbacks carry the epoch they were requested under
type Scheduler struct {
	mu  sync.Mutex
	log *zap.Logger

	opts     Options
	provider TimeProvider
	frames   FrameScheduler
	painter  Painter
	clock    *PausableClock

	rng        *rand.Rand
	integrator *physics.Integrator
	machine    *fsm.Machine[*Scheduler]

	track  track.Track
	racers []component.Racer
	state  RaceState

	epoch     uint64
	handle    FrameHandle
	lastFrame time.Time // zero until the baseline frame

	outbox    []notice
	listeners []Listener

	statPhase    *status.Label
	statElapsed  *atomic.Int64
	statProgress *status.Percent
	statWinner   *atomic.Int64
	statFrames   *atomic.Int64
	statStale    *atomic.Int64
	statSkipped  *atomic.Int64
}

// NewScheduler builds the race, paints the initial static frame and leaves the race Idle
func NewScheduler(opts Options, provider TimeProvider, frames FrameScheduler, painter Painter, reg *status.Registry, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if sz, ok := painter.(Sizer); ok {
		if w, h := sz.Size(); w > 0 && h > 0 {
			opts.Width, opts.Height = w, h
		}
	}
	if opts.MaxFrameDelta <= 0 {
		opts.MaxFrameDelta = parameter.MaxFrameDelta
	}
	if opts.Lanes <= 0 {
		opts.Lanes = parameter.DefaultLaneCount
	}
	if opts.Ranges == (system.FieldRanges{}) {
		opts.Ranges = system.DefaultFieldRanges()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^parameter.SeedStream))

	s := &Scheduler{
		log:          log.Named("race"),
		opts:         opts,
		provider:     provider,
		frames:       frames,
		painter:      painter,
		clock:        NewPausableClock(provider),
		rng:          rng,
		integrator:   physics.NewIntegrator(opts.MaxFrameDelta, rng),
		machine:      fsm.NewMachine[*Scheduler](),
		statPhase:    reg.Labels.Get(status.KeyRacePhase),
		statElapsed:  reg.Ints.Get(status.KeyRaceElapsedMs),
		statProgress: reg.Percents.Get(status.KeyRaceProgress),
		statWinner:   reg.Ints.Get(status.KeyRaceWinner),
		statFrames:   reg.Ints.Get(status.KeyRaceFrames),
		statStale:    reg.Ints.Get(status.KeyRaceStaleFrames),
		statSkipped:  reg.Ints.Get(status.KeyRaceSkippedFrames),
	}

	s.machine.RegisterAction("ArmFrame", (*Scheduler).arm)
	s.machine.RegisterAction("DisarmFrame", (*Scheduler).disarm)
	s.machine.RegisterGuard("FieldReady", func(s *Scheduler, _ *fsm.RegionState) bool { return s.fieldReady() })

	if err := fsm.LoadConfigAuto(s.machine, opts.Fs, opts.FSMConfigPath, asset.DefaultRaceFSMConfig); err != nil {
		return nil, fmt.Errorf("race FSM: %w", err)
	}
	if err := s.machine.Init(s); err != nil {
		return nil, fmt.Errorf("race FSM init: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.regenerate()
	s.syncPhase()
	s.publish()
	s.paint()

	s.log.Debug("race ready", zap.Uint64("seed", seed), zap.Int("lanes", s.track.LaneCount))
	return s, nil
}

// AddListener registers an observer of accepted commands
func (s *Scheduler) AddListener(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Reset cancels any pending frame, regenerates track and field, clears results and paints a static frame
// Allowed from any phase
func (s *Scheduler) Reset() {
	s.mu.Lock()

	s.machine.HandleEvent(s, event.EventRaceReset)
	s.disarm()
	s.clock.Reset()
	s.regenerate()
	s.state = RaceState{}
	s.syncPhase()
	s.publish()
	s.paint()

	s.log.Info("race reset")
	s.enqueue(event.EventRaceReset)
	s.unlockAndNotify()
}

// Start begins the race and frame scheduling
// Returns false when not accepted: Running, Finished, or a surface too narrow to race on
func (s *Scheduler) Start() bool {
	s.mu.Lock()

	if !s.machine.HandleEvent(s, event.EventRaceStart) {
		s.mu.Unlock()
		return false
	}
	if s.state.StartedAt.IsZero() {
		s.state.StartedAt = s.provider.Now()
	}
	s.clock.Resume()
	s.syncPhase()
	s.publish()

	s.log.Info("race started", zap.Int64("elapsed_ms", s.state.ElapsedMs))
	s.enqueue(event.EventRaceStart)
	s.unlockAndNotify()
	return true
}

// Stop halts scheduling and returns to Idle without repainting; returns false unless Running
func (s *Scheduler) Stop() bool {
	s.mu.Lock()

	if !s.machine.HandleEvent(s, event.EventRaceStop) {
		s.mu.Unlock()
		return false
	}
	s.clock.Pause()
	s.state.ElapsedMs = s.clock.Elapsed().Milliseconds()
	s.syncPhase()
	s.publish()

	s.log.Info("race stopped", zap.Int64("elapsed_ms", s.state.ElapsedMs))
	s.enqueue(event.EventRaceStop)
	s.unlockAndNotify()
	return true
}

// Resize recomputes track geometry for a new surface size, keeping positions and phase
func (s *Scheduler) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.painter != nil {
		if err := s.painter.Resize(width, height); err != nil {
			return err
		}
	}
	s.opts.Width, s.opts.Height = width, height
	s.track = track.Recompute(float64(width), float64(height), s.opts.Lanes)
	s.state.ProgressPct = physics.Progress(s.track, s.leadingX())
	s.publish()
	s.paint()

	s.log.Debug("surface resized", zap.Int("width", width), zap.Int("height", height), zap.Float64("finish_x", s.track.FinishX))
	return nil
}

// Status returns a copy of the race state with live elapsed time
func (s *Scheduler) Status() RaceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.ElapsedMs = s.clock.Elapsed().Milliseconds()
	return st
}

// Track returns the current geometry
func (s *Scheduler) Track() track.Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Racers returns a copy of the field
func (s *Scheduler) Racers() []component.Racer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.racers)
}

// Close cancels scheduling without changing phase
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
}

// onFrame is the body of every requested frame
func (s *Scheduler) onFrame(epoch uint64, now time.Time) {
	s.mu.Lock()

	if epoch != s.epoch || s.state.Phase != PhaseRunning {
		s.statStale.Add(1)
		s.log.Debug("stale frame callback dropped", zap.Uint64("epoch", epoch), zap.Uint64("current", s.epoch))
		s.mu.Unlock()
		return
	}
	s.handle = nil
	s.statFrames.Add(1)

	// First callback only establishes the baseline
	if s.lastFrame.IsZero() {
		s.lastFrame = now
		s.requestFrame()
		s.mu.Unlock()
		return
	}
	dt := now.Sub(s.lastFrame)
	s.lastFrame = now

	finished, err := s.step(dt)
	if err != nil {
		s.statSkipped.Add(1)
		s.log.Warn("frame skipped", zap.Error(err))
		s.requestFrame()
		s.mu.Unlock()
		return
	}

	if finished {
		s.clock.Pause()
		s.state.EndedAt = now
		s.state.ElapsedMs = s.clock.Elapsed().Milliseconds()
		s.machine.HandleEvent(s, event.EventRaceFinish)
		s.syncPhase()
		s.publish()

		s.log.Info("race finished", zap.Int("winner", s.state.WinnerID), zap.Int64("elapsed_ms", s.state.ElapsedMs))
		s.enqueue(event.EventRaceFinish)
	} else {
		s.requestFrame()
	}
	s.unlockAndNotify()
}

// step advances the simulation by dt and paints; a panic anywhere in the step skips the frame
func (s *Scheduler) step(dt time.Duration) (finished bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame step panic: %v", r)
		}
	}()

	elapsed := s.clock.Elapsed()
	res := s.integrator.Advance(s.racers, s.track, dt, float64(elapsed.Milliseconds()))

	s.state.ElapsedMs = elapsed.Milliseconds()
	s.state.ProgressPct = physics.Progress(s.track, res.LeadingX)

	// Winner is fixed the first time any racer reaches the boundary
	if res.AnyFinished && !s.state.HasWinner() {
		if id, ok := physics.PickWinner(s.racers); ok {
			s.state.WinnerID = id
		}
	}

	s.publish()
	s.paint()
	return res.AnyFinished, nil
}

// arm requests the first frame of a running stretch
func (s *Scheduler) arm() {
	s.lastFrame = time.Time{}
	s.requestFrame()
}

// disarm invalidates outstanding callbacks and cancels the pending one
func (s *Scheduler) disarm() {
	s.epoch++
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
}

func (s *Scheduler) requestFrame() {
	epoch := s.epoch
	s.handle = s.frames.RequestFrame(func(now time.Time) {
		s.onFrame(epoch, now)
	})
}

func (s *Scheduler) regenerate() {
	s.track = track.Recompute(float64(s.opts.Width), float64(s.opts.Height), s.opts.Lanes)
	s.racers = system.SpawnField(s.track, s.rng, s.opts.Ranges)
}

// fieldReady reports whether the track leaves room to race: a field exists and the boundary lies past the start
func (s *Scheduler) fieldReady() bool {
	return len(s.racers) > 0 && s.track.Boundary() > s.track.StartX
}

func (s *Scheduler) leadingX() float64 {
	lead := s.track.StartX
	for _, r := range s.racers {
		lead = max(lead, r.X)
	}
	return lead
}

func (s *Scheduler) syncPhase() {
	s.state.Phase = phaseFromState(s.machine.GetRegionState(asset.RaceRegion))
}

func (s *Scheduler) publish() {
	s.statPhase.Store(s.state.Phase.String())
	s.statElapsed.Store(s.state.ElapsedMs)
	s.statProgress.Set(s.state.ProgressPct)
	s.statWinner.Store(int64(s.state.WinnerID))
}

func (s *Scheduler) paint() {
	if s.painter == nil {
		return
	}
	err := s.painter.Paint(render.RenderContext{
		Track:     s.track,
		Racers:    slices.Clone(s.racers),
		ElapsedMs: s.state.ElapsedMs,
		WinnerID:  s.state.WinnerID,
		Phase:     s.state.Phase.String(),
	})
	if err != nil {
		s.log.Warn("paint failed", zap.Error(err))
	}
}

func (s *Scheduler) enqueue(et event.EventType) {
	s.outbox = append(s.outbox, notice{et: et, state: s.state})
}

// unlockAndNotify releases mu and delivers queued notices
func (s *Scheduler) unlockAndNotify() {
	out := s.outbox
	s.outbox = nil
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, n := range out {
		for _, l := range listeners {
			l(n.et, n.state)
		}
	}
}
