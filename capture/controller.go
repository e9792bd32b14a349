package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/lixenwraith/racecast/asset"
	"github.com/lixenwraith/racecast/engine"
	"github.com/lixenwraith/racecast/engine/fsm"
	"github.com/lixenwraith/racecast/event"
	"github.com/lixenwraith/racecast/status"
)

// Phase is the capture lifecycle position
type Phase string

const (
	PhaseIdle      Phase = "Idle"
	PhaseRecording Phase = "Recording"
	PhaseStopped   Phase = "Stopped"
)

// Listener observes capture lifecycle events, called outside the controller lock
type Listener func(et event.EventType)

// session owns the segments of one recording; late finalization of an older session cannot touch a newer one
type session struct {
	id   uuid.UUID
	seq  uint64
	sink Sink

	mu     sync.Mutex
	chunks [][]byte
	size   int
	closed bool
}

// Controller attaches capture sinks to the drawing surface and keeps the latest artifact
type Controller struct {
	mu  sync.Mutex
	log *zap.Logger

	opener   SinkOpener
	store    *Store
	provider engine.TimeProvider
	machine  *fsm.Machine[*Controller]

	seq      uint64
	active   *session
	detached *session // set by DetachSink during a stop transition
	artifact *Artifact
	pending  sync.WaitGroup

	listeners []Listener

	statPhase    *status.Label
	statArtifact *status.Label
	statSegments *atomic.Int64
	statBytes    *atomic.Int64
}

// Options configures a Controller
type Options struct {
	FSMConfigPath string   // empty = embedded
	Fs            afero.Fs // resolves FSMConfigPath; defaults to the store filesystem
}

// NewController creates an Idle controller
func NewController(opener SinkOpener, store *Store, provider engine.TimeProvider, reg *status.Registry, log *zap.Logger, opts Options) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	c := &Controller{
		log:          log.Named("capture"),
		opener:       opener,
		store:        store,
		provider:     provider,
		machine:      fsm.NewMachine[*Controller](),
		statPhase:    reg.Labels.Get(status.KeyCapturePhase),
		statArtifact: reg.Labels.Get(status.KeyCaptureArtifact),
		statSegments: reg.Ints.Get(status.KeyCaptureSegments),
		statBytes:    reg.Ints.Get(status.KeyCaptureBytes),
	}
	c.machine.RegisterAction("DetachSink", func(c *Controller) {
		c.detached, c.active = c.active, nil
	})

	fs := opts.Fs
	if fs == nil {
		fs = store.fs
	}
	if err := fsm.LoadConfigAuto(c.machine, fs, opts.FSMConfigPath, asset.DefaultCaptureFSMConfig); err != nil {
		return nil, fmt.Errorf("capture FSM: %w", err)
	}
	if err := c.machine.Init(c); err != nil {
		return nil, fmt.Errorf("capture FSM init: %w", err)
	}
	c.publish()
	return c, nil
}

// AddListener registers an observer of capture events
func (c *Controller) AddListener(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// StartRecording attaches a new sink; no-op while Recording
// Fails with ErrCaptureUnavailable when the sink cannot be created, leaving the phase unchanged
func (c *Controller) StartRecording() error {
	c.mu.Lock()

	if !c.machine.Accepts(c, event.EventCaptureStart) {
		c.mu.Unlock()
		return nil
	}

	c.seq++
	sess := &session{id: uuid.New(), seq: c.seq}
	c.statSegments.Store(0)
	c.statBytes.Store(0)

	c.pending.Add(1)
	sink, err := c.opener.Open(c.appender(sess), func(err error) { c.finalize(sess, err) })
	if err != nil {
		c.pending.Done()
		c.mu.Unlock()
		c.log.Warn("capture sink unavailable", zap.Error(err))
		if !errors.Is(err, ErrCaptureUnavailable) {
			err = fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
		}
		return err
	}
	sess.sink = sink
	c.active = sess
	c.machine.HandleEvent(c, event.EventCaptureStart)
	c.publish()

	c.log.Info("recording started", zap.Stringer("session", sess.id))
	c.unlockAndNotify(event.EventCaptureStart)
	return nil
}

// StopRecording signals the sink to finalize; no-op unless Recording
// The artifact appears asynchronously once the sink reports completion
func (c *Controller) StopRecording() {
	c.mu.Lock()

	if !c.machine.HandleEvent(c, event.EventCaptureStop) {
		c.mu.Unlock()
		return
	}
	sess := c.detached
	c.detached = nil
	c.publish()

	c.log.Info("recording stopped", zap.Stringer("session", sess.id))
	c.unlockAndNotify(event.EventCaptureStop)

	// Outside the lock: a sink may finalize synchronously
	sess.sink.Stop()
}

// Phase returns the capture lifecycle position
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Phase(c.machine.GetRegionState(asset.CaptureRegion))
}

// Artifact returns the current artifact, nil when none exists
func (c *Controller) Artifact() *Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.artifact == nil {
		return nil
	}
	a := *c.artifact
	return &a
}

// OpenArtifact returns the current artifact and a reader over its bytes
func (c *Controller) OpenArtifact() (io.ReadCloser, *Artifact, error) {
	a := c.Artifact()
	if a == nil {
		return nil, nil, ErrNoArtifact
	}
	r, err := c.store.Open(a)
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}
	return r, a, nil
}

// DownloadArtifact saves the current artifact under a timestamp-derived name
// No-op returning an empty path when no artifact exists
func (c *Controller) DownloadArtifact(saver Saver) (string, error) {
	r, _, err := c.OpenArtifact()
	if errors.Is(err, ErrNoArtifact) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer r.Close()

	p, err := saver.Save(ArtifactName(c.provider.Now()), r)
	if err != nil {
		return "", fmt.Errorf("save artifact: %w", err)
	}
	c.log.Info("artifact saved", zap.String("path", p))
	return p, nil
}

// Discard releases the current artifact without touching an active session
func (c *Controller) Discard() {
	c.mu.Lock()
	old := c.artifact
	c.artifact = nil
	c.publish()
	c.mu.Unlock()

	c.release(old)
}

// Wait blocks until every stopped session has finalized
func (c *Controller) Wait() {
	c.pending.Wait()
}

// Close stops an active recording and waits for finalization
func (c *Controller) Close() {
	c.StopRecording()
	c.Wait()
}

func (c *Controller) appender(sess *session) EmitFunc {
	return func(seg []byte) {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		if sess.closed {
			return
		}
		sess.chunks = append(sess.chunks, seg)
		sess.size += len(seg)
		c.statSegments.Store(int64(len(sess.chunks)))
		c.statBytes.Store(int64(sess.size))
	}
}

// finalize concatenates a session's segments into an artifact, replacing an older one
func (c *Controller) finalize(sess *session, sinkErr error) {
	defer c.pending.Done()

	sess.mu.Lock()
	sess.closed = true
	data := bytes.Join(sess.chunks, nil)
	count := len(sess.chunks)
	sess.chunks = nil
	sess.mu.Unlock()

	if sinkErr != nil {
		c.log.Error("capture finalization failed", zap.Stringer("session", sess.id), zap.Error(sinkErr))
		c.abandon(sess)
		return
	}

	art, err := c.store.Put(sess.id, data, c.provider.Now())
	if err != nil {
		c.log.Error("capture artifact not stored", zap.Stringer("session", sess.id), zap.Error(err))
		return
	}
	art.seq = sess.seq

	c.mu.Lock()
	var old *Artifact
	if c.artifact == nil || c.artifact.seq < art.seq {
		old, c.artifact = c.artifact, art
	} else {
		// A newer session already finalized
		old = art
	}
	c.publish()
	c.log.Info("capture finalized",
		zap.Stringer("session", sess.id),
		zap.String("artifact", art.Handle),
		zap.Int("segments", count),
		zap.Int("bytes", len(data)),
	)
	c.unlockAndNotify(event.EventCaptureFinalized)

	c.release(old)
}

// abandon leaves Recording when the active session's sink fails on its own
// The sink has already reported done, so it is not stopped again
func (c *Controller) abandon(sess *session) {
	c.mu.Lock()
	if c.active != sess || !c.machine.HandleEvent(c, event.EventCaptureStop) {
		c.mu.Unlock()
		return
	}
	c.detached = nil
	c.publish()

	c.log.Warn("recording aborted by sink failure", zap.Stringer("session", sess.id))
	c.unlockAndNotify(event.EventCaptureStop)
}

func (c *Controller) release(a *Artifact) {
	if a == nil {
		return
	}
	if err := c.store.Release(a); err != nil {
		c.log.Warn("artifact release failed", zap.String("artifact", a.Handle), zap.Error(err))
		return
	}
	c.log.Debug("artifact released", zap.String("artifact", a.Handle))
}

func (c *Controller) publish() {
	phase := c.machine.GetRegionState(asset.CaptureRegion)
	if old := c.statPhase.Swap(phase); old != phase {
		c.log.Debug("capture phase", zap.String("from", old), zap.String("to", phase))
	}
	if c.artifact != nil {
		c.statArtifact.Store(c.artifact.Handle)
	} else {
		c.statArtifact.Store("")
	}
}

// unlockAndNotify releases mu and delivers et to listeners
func (c *Controller) unlockAndNotify(et event.EventType) {
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()
	for _, l := range listeners {
		l(et)
	}
}
