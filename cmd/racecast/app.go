package main

import (
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/audio"
	"github.com/lixenwraith/racecast/capture"
	"github.com/lixenwraith/racecast/config"
	"github.com/lixenwraith/racecast/engine"
	"github.com/lixenwraith/racecast/event"
	"github.com/lixenwraith/racecast/render"
	"github.com/lixenwraith/racecast/render/renderer"
	"github.com/lixenwraith/racecast/service"
	"github.com/lixenwraith/racecast/status"
)

// memSpoolDir is the artifact directory when no spool dir is configured
const memSpoolDir = "/spool"

// app is the wired race, recorder and their background services
type app struct {
	cfg *config.Config
	log *zap.Logger
	fs  afero.Fs

	reg      *status.Registry
	surface  *render.Surface
	pipeline *renderer.Pipeline
	clock    *engine.ClockScheduler
	race     *engine.Scheduler
	capture  *capture.Controller
	sound    audio.Player
	hub      *service.Hub
}

// newApp builds every component; nothing runs until hub.StartAll
func newApp(cfg *config.Config, log *zap.Logger, withAudio bool) (*app, error) {
	a := &app{
		cfg: cfg,
		log: log,
		fs:  afero.NewOsFs(),
		reg: status.NewRegistry(),
		hub: service.NewHub(log),
	}

	surface, err := render.NewSurface(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("surface %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	a.surface = surface
	a.pipeline = renderer.NewPipeline(surface)
	a.pipeline.Hud.SetVisible(cfg.HUD)

	provider := engine.NewMonotonicTimeProvider()
	a.clock = engine.NewClockScheduler(provider, cfg.FrameInterval())

	a.race, err = engine.NewScheduler(engine.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Lanes:         cfg.Lanes,
		Ranges:        cfg.Ranges(),
		MaxFrameDelta: cfg.MaxFrameDelta,
		Seed:          cfg.Seed,
		FSMConfigPath: cfg.FSMConfig,
		Fs:            a.fs,
	}, provider, a.clock, a.pipeline, a.reg, log)
	if err != nil {
		return nil, err
	}

	spoolFs, spoolDir := afero.Fs(afero.NewMemMapFs()), memSpoolDir
	if cfg.SpoolDir != "" {
		spoolFs, spoolDir = a.fs, cfg.SpoolDir
	}
	store, err := capture.NewStore(spoolFs, spoolDir)
	if err != nil {
		return nil, err
	}

	opener := capture.NewMJPEGOpener(surface)
	opener.FPS = cfg.CaptureFPS
	opener.Quality = cfg.CaptureQuality

	a.capture, err = capture.NewController(opener, store, provider, a.reg, log, capture.Options{
		FSMConfigPath: cfg.CaptureFSMConfig,
		Fs:            a.fs,
	})
	if err != nil {
		return nil, err
	}

	a.sound = a.openAudio(withAudio)

	a.race.AddListener(func(et event.EventType, _ engine.RaceState) {
		// A reset race invalidates the previous recording
		if et == event.EventRaceReset {
			a.capture.Discard()
		}
		a.sound.OnEvent(et)
	})
	a.capture.AddListener(a.sound.OnEvent)

	if err := a.registerServices(); err != nil {
		return nil, err
	}
	return a, nil
}

// openAudio falls back to silence when disabled or when no device is available
func (a *app) openAudio(enabled bool) audio.Player {
	if !enabled || !a.cfg.Audio {
		return audio.NopPlayer{}
	}
	sm := audio.NewSoundManager(a.cfg.Volume, a.log)
	if err := sm.Initialize(); err != nil {
		a.log.Warn("audio unavailable, continuing without sound", zap.Error(err))
		return audio.NopPlayer{}
	}
	return sm
}

func (a *app) registerServices() error {
	services := []service.Service{
		service.NewFunc("clock", nil,
			func() error { a.clock.Start(); return nil },
			func() error { a.clock.Stop(); return nil }),
		service.NewFunc("race", []string{"clock"}, nil,
			func() error { a.race.Close(); return nil }),
		service.NewFunc("capture", []string{"race"}, nil,
			func() error { a.capture.Close(); return nil }),
		service.NewFunc("audio", nil, nil,
			func() error { a.sound.Cleanup(); return nil }),
	}
	for _, svc := range services {
		if err := a.hub.Register(svc); err != nil {
			return err
		}
	}
	return nil
}

// start initializes and starts every registered service
func (a *app) start() error {
	if err := a.hub.InitAll(); err != nil {
		return err
	}
	return a.hub.StartAll()
}

// stop halts services in reverse dependency order
func (a *app) stop() {
	a.hub.StopAll()
	_ = a.log.Sync()
}
