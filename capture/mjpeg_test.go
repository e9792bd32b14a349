package capture

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	img *image.RGBA
}

func (s staticSource) Snapshot() *image.RGBA { return s.img }

func TestMJPEGOpenValidation(t *testing.T) {
	src := staticSource{img: image.NewRGBA(image.Rect(0, 0, 4, 4))}
	tests := []struct {
		name   string
		opener *MJPEGOpener
	}{
		{"no source", &MJPEGOpener{FPS: 60, Quality: 80}},
		{"zero fps", &MJPEGOpener{Source: src, Quality: 80}},
		{"bad quality", &MJPEGOpener{Source: src, FPS: 60, Quality: 101}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opener.Open(func([]byte) {}, func(error) {})
			assert.ErrorIs(t, err, ErrCaptureUnavailable)
		})
	}
}

func TestMJPEGSinkEmitsDecodableFrames(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(3, 3, color.RGBA{255, 0, 0, 255})

	opener := NewMJPEGOpener(staticSource{img: img})
	opener.FPS = 200

	var mu sync.Mutex
	var segs [][]byte
	done := make(chan error, 1)

	sink, err := opener.Open(func(seg []byte) {
		mu.Lock()
		segs = append(segs, seg)
		mu.Unlock()
	}, func(err error) { done <- err })
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(segs) >= 3
	}, 2*time.Second, 5*time.Millisecond)

	sink.Stop()
	sink.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sink never finalized")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, seg := range segs {
		decoded, err := jpeg.Decode(bytes.NewReader(seg))
		require.NoError(t, err)
		assert.Equal(t, img.Bounds(), decoded.Bounds())
	}
	// Unchanged surface repeats the cached encoding
	assert.Equal(t, segs[0], segs[1])
}
