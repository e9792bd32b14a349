package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"sync"
	"time"

	"github.com/lixenwraith/racecast/core"
	"github.com/lixenwraith/racecast/parameter"
)

// FrameSource is a read-only view of presented frames
type FrameSource interface {
	Snapshot() *image.RGBA
}

// MJPEGOpener samples a frame source at a fixed rate and emits one JPEG per sample
// Concatenated segments form a Motion-JPEG stream
type MJPEGOpener struct {
	Source  FrameSource
	FPS     int
	Quality int
}

// NewMJPEGOpener creates an opener with default rate and quality
func NewMJPEGOpener(src FrameSource) *MJPEGOpener {
	return &MJPEGOpener{
		Source:  src,
		FPS:     parameter.CaptureFPS,
		Quality: parameter.CaptureJPEGQuality,
	}
}

// Open starts sampling; segments are emitted from a single goroutine
func (o *MJPEGOpener) Open(emit EmitFunc, done DoneFunc) (Sink, error) {
	if o.Source == nil {
		return nil, fmt.Errorf("%w: no surface", ErrCaptureUnavailable)
	}
	if o.FPS <= 0 {
		return nil, fmt.Errorf("%w: frame rate %d", ErrCaptureUnavailable, o.FPS)
	}
	if o.Quality < 1 || o.Quality > 100 {
		return nil, fmt.Errorf("%w: jpeg quality %d", ErrCaptureUnavailable, o.Quality)
	}

	s := &mjpegSink{
		src:      o.Source,
		interval: time.Second / time.Duration(o.FPS),
		opts:     &jpeg.Options{Quality: o.Quality},
		emit:     emit,
		done:     done,
		stopChan: make(chan struct{}),
	}
	core.Go(s.loop)
	return s, nil
}

type mjpegSink struct {
	src      FrameSource
	interval time.Duration
	opts     *jpeg.Options
	emit     EmitFunc
	done     DoneFunc

	stopChan chan struct{}
	stopOnce sync.Once

	// Last encoded frame; repeated while the surface is unchanged
	lastImg *image.RGBA
	lastSeg []byte
}

func (s *mjpegSink) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *mjpegSink) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			s.done(nil)
			return
		case <-ticker.C:
			if err := s.sample(); err != nil {
				s.done(err)
				return
			}
		}
	}
}

func (s *mjpegSink) sample() error {
	img := s.src.Snapshot()
	if img == nil {
		return nil
	}
	if img != s.lastImg {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, s.opts); err != nil {
			return fmt.Errorf("encode frame: %w", err)
		}
		s.lastImg = img
		s.lastSeg = buf.Bytes()
	}
	s.emit(s.lastSeg)
	return nil
}
