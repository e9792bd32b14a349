package terminal

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/capture"
	"github.com/lixenwraith/racecast/core"
	"github.com/lixenwraith/racecast/status"
)

const (
	// CellWidth and CellHeight are the surface pixels backing one terminal cell
	CellWidth  = 8
	CellHeight = 16

	footerRows      = 2
	refreshInterval = 33 * time.Millisecond
)

// RaceControl is the race surface the view drives
type RaceControl interface {
	Reset()
	Start() bool
	Stop() bool
	Resize(width, height int) error
}

// RecordControl is the capture surface the view drives
type RecordControl interface {
	StartRecording() error
	StopRecording()
	DownloadArtifact(saver capture.Saver) (string, error)
}

// FrameSource provides the last presented frame
type FrameSource interface {
	Snapshot() *image.RGBA
}

// View renders the race surface into a tcell screen with a status footer
type View struct {
	screen tcell.Screen
	race   RaceControl
	rec    RecordControl
	src    FrameSource
	reg    *status.Registry
	saver  capture.Saver
	log    *zap.Logger

	mu      sync.Mutex
	message string
	cols    int
	rows    int
}

// NewView binds a screen to the race and capture controllers
// The screen must already be initialized
func NewView(screen tcell.Screen, race RaceControl, rec RecordControl, src FrameSource, reg *status.Registry, saver capture.Saver, log *zap.Logger) *View {
	if log == nil {
		log = zap.NewNop()
	}
	return &View{
		screen: screen,
		race:   race,
		rec:    rec,
		src:    src,
		reg:    reg,
		saver:  saver,
		log:    log,
	}
}

// SurfaceSize returns the pixel size that fills the current screen above the footer
func (v *View) SurfaceSize() (int, int) {
	cols, rows := v.screen.Size()
	rows -= footerRows
	return max(cols, 1) * CellWidth, max(rows, 1) * CellHeight
}

// Run polls input and redraws until quit or ctx is done
func (v *View) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	core.Go(func() {
		v.screen.ChannelEvents(events, quit)
	})
	defer close(quit)

	v.syncSize()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			v.Draw()
		}
	}
}

// HandleEvent applies one input event; false means quit
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.race.Reset()
			v.setMessage("reset")
		case 's':
			if v.race.Start() {
				v.setMessage("started")
			}
		case 'x':
			if v.race.Stop() {
				v.setMessage("stopped")
			}
		case 'c':
			if err := v.rec.StartRecording(); err != nil {
				v.report("recording", err)
			} else {
				v.setMessage("recording")
			}
		case 'v':
			v.rec.StopRecording()
			v.setMessage("recording stopped")
		case 'd':
			path, err := v.rec.DownloadArtifact(v.saver)
			switch {
			case err != nil:
				v.report("download", err)
			case path == "":
				v.setMessage("download: nothing recorded")
			default:
				v.setMessage("saved " + path)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.syncSize()
	}
	return true
}

// Draw paints the latest frame and footer
func (v *View) Draw() {
	cols, rows := v.screen.Size()
	trackRows := rows - footerRows
	v.screen.Clear()

	if trackRows > 0 {
		cells := Convert(v.src.Snapshot(), cols, trackRows)
		for i, c := range cells {
			v.screen.SetContent(i%cols, i/cols, c.Rune, nil, c.Style())
		}
	}

	snap := v.reg.Snapshot()
	line := fmt.Sprintf(" %s  Time: %s  %3.0f%%  rec:%s", snap.Headline(), snap.Elapsed, snap.ProgressPct, snap.RecordingPhase)
	v.drawText(0, rows-2, line, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	help := " r reset  s start  x stop  c record  v stop rec  d download  q quit"
	if msg := v.getMessage(); msg != "" {
		help += "  | " + msg
	}
	v.drawText(0, rows-1, help, tcell.StyleDefault.Foreground(tcell.ColorGray))

	v.screen.Show()
}

func (v *View) drawText(x, y int, s string, style tcell.Style) {
	if y < 0 {
		return
	}
	cols, _ := v.screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// syncSize resizes the race surface when the terminal grid changed
func (v *View) syncSize() {
	cols, rows := v.screen.Size()
	v.mu.Lock()
	changed := cols != v.cols || rows != v.rows
	v.cols, v.rows = cols, rows
	v.mu.Unlock()
	if !changed {
		return
	}

	w, h := v.SurfaceSize()
	if err := v.race.Resize(w, h); err != nil {
		v.log.Warn("resize failed", zap.Int("width", w), zap.Int("height", h), zap.Error(err))
	}
}

func (v *View) report(op string, err error) {
	switch {
	case errors.Is(err, capture.ErrCaptureUnavailable):
		v.setMessage(op + ": capture unavailable")
	case errors.Is(err, capture.ErrNoArtifact):
		v.setMessage(op + ": nothing recorded")
	default:
		v.setMessage(op + ": " + err.Error())
	}
	v.log.Warn(op+" failed", zap.Error(err))
}

func (v *View) setMessage(s string) {
	v.mu.Lock()
	v.message = s
	v.mu.Unlock()
}

func (v *View) getMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.message
}
