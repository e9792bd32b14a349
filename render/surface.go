package render

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/fogleman/gg"
)

// ErrSurfaceUnavailable is returned when the surface has no drawable area
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Surface is the shared drawing target
// The pipeline draws into a back buffer and presents a finished copy; readers only ever see presented frames
type Surface struct {
	mu    sync.Mutex // serializes writers
	back  *image.RGBA
	front atomic.Pointer[image.RGBA]
	frame atomic.Uint64
}

// NewSurface creates a surface of the given pixel size
func NewSurface(width, height int) (*Surface, error) {
	s := &Surface{}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// Resize reallocates the back buffer; the last presented frame stays readable until the next Draw
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrSurfaceUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.back = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// Size returns the back buffer dimensions
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.back.Bounds()
	return b.Dx(), b.Dy()
}

// Draw runs fn against the back buffer and presents the result
func (s *Surface) Draw(fn func(dc *gg.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(gg.NewContextForRGBA(s.back))

	presented := image.NewRGBA(s.back.Rect)
	copy(presented.Pix, s.back.Pix)
	s.front.Store(presented)
	s.frame.Add(1)
}

// Snapshot returns the last presented frame, nil before the first Draw
// The returned image is immutable; callers must not write to it
func (s *Surface) Snapshot() *image.RGBA {
	return s.front.Load()
}

// FrameCount returns the number of frames presented
func (s *Surface) FrameCount() uint64 {
	return s.frame.Load()
}
