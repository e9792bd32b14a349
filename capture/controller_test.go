package capture

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/racecast/engine"
	"github.com/lixenwraith/racecast/event"
	"github.com/lixenwraith/racecast/status"
)

type fakeSink struct {
	emit    EmitFunc
	done    DoneFunc
	async   bool
	stopped int
}

func (s *fakeSink) Stop() {
	s.stopped++
	if !s.async {
		s.done(nil)
	}
}

type fakeOpener struct {
	mu    sync.Mutex
	sinks []*fakeSink
	err   error
	async bool
}

func (o *fakeOpener) Open(emit EmitFunc, done DoneFunc) (Sink, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return nil, o.err
	}
	s := &fakeSink{emit: emit, done: done, async: o.async}
	o.sinks = append(o.sinks, s)
	return s, nil
}

func (o *fakeOpener) last() *fakeSink {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.sinks[len(o.sinks)-1]
}

type fixture struct {
	c      *Controller
	opener *fakeOpener
	fs     afero.Fs
	clock  *engine.MockTimeProvider
	reg    *status.Registry
	events []event.EventType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		opener: &fakeOpener{},
		fs:     afero.NewMemMapFs(),
		clock:  engine.NewMockTimeProvider(time.Date(2025, 3, 4, 5, 6, 7, 89_000_000, time.UTC)),
		reg:    status.NewRegistry(),
	}
	store, err := NewStore(f.fs, "/spool")
	require.NoError(t, err)
	c, err := NewController(f.opener, store, f.clock, f.reg, nil, Options{})
	require.NoError(t, err)
	c.AddListener(func(et event.EventType) { f.events = append(f.events, et) })
	f.c = c
	return f
}

func readArtifact(t *testing.T, c *Controller) string {
	t.Helper()
	r, _, err := c.OpenArtifact()
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestStopWithoutStartIsNoop(t *testing.T) {
	f := newFixture(t)
	f.c.StopRecording()

	assert.Equal(t, PhaseIdle, f.c.Phase())
	assert.Nil(t, f.c.Artifact())
	assert.Empty(t, f.events)
	entries, err := afero.ReadDir(f.fs, "/spool")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStartTwiceOpensOneSink(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.StartRecording())
	require.NoError(t, f.c.StartRecording())

	assert.Len(t, f.opener.sinks, 1)
	assert.Equal(t, PhaseRecording, f.c.Phase())
	assert.Equal(t, "Recording", f.reg.Labels.Get(status.KeyCapturePhase).Load())
}

func TestArtifactIsConcatenationInEmissionOrder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.StartRecording())
	sink := f.opener.last()
	for _, seg := range []string{"ab", "cde", "f"} {
		sink.emit([]byte(seg))
	}
	assert.Equal(t, int64(3), f.reg.Ints.Get(status.KeyCaptureSegments).Load())
	assert.Equal(t, int64(6), f.reg.Ints.Get(status.KeyCaptureBytes).Load())

	f.c.StopRecording()
	f.c.Wait()

	assert.Equal(t, PhaseStopped, f.c.Phase())
	a := f.c.Artifact()
	require.NotNil(t, a)
	assert.Equal(t, int64(6), a.Size)
	assert.Equal(t, "video/x-motion-jpeg", a.MIME)
	assert.True(t, strings.HasPrefix(a.Handle, "artifact:"))
	assert.Equal(t, a.Handle, f.reg.Labels.Get(status.KeyCaptureArtifact).Load())
	assert.Equal(t, "abcdef", readArtifact(t, f.c))
	assert.Equal(t, 1, sink.stopped)
	assert.Equal(t, []event.EventType{event.EventCaptureStart, event.EventCaptureStop, event.EventCaptureFinalized}, f.events)
}

func TestNewRecordingReleasesPreviousArtifact(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.c.StartRecording())
	f.opener.last().emit([]byte("first"))
	f.c.StopRecording()
	first := f.c.Artifact()
	require.NotNil(t, first)

	require.NoError(t, f.c.StartRecording())
	assert.Equal(t, PhaseRecording, f.c.Phase())
	f.opener.last().emit([]byte("second"))
	f.c.StopRecording()

	second := f.c.Artifact()
	require.NotNil(t, second)
	assert.NotEqual(t, first.Handle, second.Handle)
	assert.Equal(t, "second", readArtifact(t, f.c))

	exists, err := afero.Exists(f.fs, first.Path)
	require.NoError(t, err)
	assert.False(t, exists, "previous artifact must be released")
}

func TestCaptureUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("codec missing")},
		{"wrapped sentinel", ErrCaptureUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.opener.err = tt.err

			err := f.c.StartRecording()
			assert.ErrorIs(t, err, ErrCaptureUnavailable)
			assert.Equal(t, PhaseIdle, f.c.Phase())
			assert.Empty(t, f.events)
			f.c.Wait()
		})
	}
}

func TestLateFinalizationDoesNotMixSessions(t *testing.T) {
	f := newFixture(t)
	f.opener.async = true

	require.NoError(t, f.c.StartRecording())
	a := f.opener.last()
	a.emit([]byte("A1"))
	f.c.StopRecording()

	require.NoError(t, f.c.StartRecording())
	b := f.opener.last()
	b.emit([]byte("B1"))
	a.emit([]byte("A2")) // in flight before A finalizes
	f.c.StopRecording()

	b.done(nil)
	assert.Equal(t, "B1", readArtifact(t, f.c))

	a.done(nil)
	f.c.Wait()
	assert.Equal(t, "B1", readArtifact(t, f.c), "older session must not replace a newer artifact")

	// Segments after finalization are dropped; only the kept artifact stays in the spool
	a.emit([]byte("late"))
	entries, err := afero.ReadDir(f.fs, "/spool")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSinkFailureProducesNoArtifact(t *testing.T) {
	f := newFixture(t)
	f.opener.async = true
	require.NoError(t, f.c.StartRecording())
	s := f.opener.last()
	s.emit([]byte("x"))
	f.c.StopRecording()
	s.done(errors.New("encoder crashed"))
	f.c.Wait()

	assert.Nil(t, f.c.Artifact())
}

func TestSinkFailureEndsRecording(t *testing.T) {
	tests := []struct {
		name       string
		stopFirst  bool
		wantEvents []event.EventType
	}{
		{
			name:       "fails while recording",
			wantEvents: []event.EventType{event.EventCaptureStart, event.EventCaptureStop},
		},
		{
			name:       "fails after stop",
			stopFirst:  true,
			wantEvents: []event.EventType{event.EventCaptureStart, event.EventCaptureStop},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.opener.async = true
			require.NoError(t, f.c.StartRecording())
			s := f.opener.last()
			s.emit([]byte("x"))
			if tt.stopFirst {
				f.c.StopRecording()
			}

			s.done(errors.New("encoder crashed"))
			f.c.Wait()

			assert.Equal(t, PhaseStopped, f.c.Phase())
			assert.Equal(t, "Stopped", f.reg.Labels.Get(status.KeyCapturePhase).Load())
			assert.Nil(t, f.c.Artifact())
			assert.Equal(t, tt.wantEvents, f.events)

			// A fresh recording opens a new sink
			require.NoError(t, f.c.StartRecording())
			assert.Equal(t, PhaseRecording, f.c.Phase())
			assert.Len(t, f.opener.sinks, 2)

			f.c.StopRecording()
			assert.Equal(t, 1, f.opener.last().stopped)
		})
	}
}

func TestStaleSinkFailureKeepsNewerRecording(t *testing.T) {
	f := newFixture(t)
	f.opener.async = true

	require.NoError(t, f.c.StartRecording())
	a := f.opener.last()
	f.c.StopRecording()
	require.NoError(t, f.c.StartRecording())

	a.done(errors.New("encoder crashed"))
	assert.Equal(t, PhaseRecording, f.c.Phase())
	assert.Equal(t, 0, f.opener.last().stopped)
}

func TestDownloadArtifact(t *testing.T) {
	f := newFixture(t)
	out := DirSaver{Fs: f.fs, Dir: "/downloads"}

	p, err := f.c.DownloadArtifact(out)
	require.NoError(t, err)
	assert.Empty(t, p, "no artifact is a no-op")

	require.NoError(t, f.c.StartRecording())
	f.opener.last().emit([]byte("frames"))
	f.c.StopRecording()

	p, err = f.c.DownloadArtifact(out)
	require.NoError(t, err)
	assert.Equal(t, "/downloads/car-race-2025-03-04T05-06-07-089Z.mjpeg", p)
	data, err := afero.ReadFile(f.fs, p)
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))
}

func TestDiscard(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.c.StartRecording())
	f.opener.last().emit([]byte("x"))
	f.c.StopRecording()
	a := f.c.Artifact()
	require.NotNil(t, a)

	f.c.Discard()
	assert.Nil(t, f.c.Artifact())
	assert.Equal(t, "", f.reg.Labels.Get(status.KeyCaptureArtifact).Load())
	exists, _ := afero.Exists(f.fs, a.Path)
	assert.False(t, exists)

	_, _, err := f.c.OpenArtifact()
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestArtifactName(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 58, 7_000_000, time.FixedZone("X", 3600))
	assert.Equal(t, "car-race-2024-12-31T22-59-58-007Z.mjpeg", ArtifactName(ts))
}
