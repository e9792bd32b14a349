package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	calls []string
}

func (r *recorder) svc(name string, deps ...string) *Func {
	return NewFunc(name, deps,
		func() error { r.calls = append(r.calls, "start:"+name); return nil },
		func() error { r.calls = append(r.calls, "stop:"+name); return nil },
	)
}

func TestHubDependencyOrder(t *testing.T) {
	rec := &recorder{}
	h := NewHub(nil)
	require.NoError(t, h.Register(rec.svc("http", "race", "capture")))
	require.NoError(t, h.Register(rec.svc("capture", "race")))
	require.NoError(t, h.Register(rec.svc("race", "clock")))
	require.NoError(t, h.Register(rec.svc("clock")))
	require.NoError(t, h.Register(rec.svc("audio")))

	require.NoError(t, h.InitAll())
	require.NoError(t, h.StartAll())
	h.StopAll()

	assert.Equal(t, []string{
		"start:audio", "start:clock", "start:race", "start:capture", "start:http",
		"stop:http", "stop:capture", "stop:race", "stop:clock", "stop:audio",
	}, rec.calls)
}

func TestHubRegisterDuplicate(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(NewFunc("a", nil, nil, nil)))
	assert.Error(t, h.Register(NewFunc("a", nil, nil, nil)))
}

func TestHubMissingDependency(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(NewFunc("a", []string{"ghost"}, nil, nil)))
	assert.ErrorContains(t, h.InitAll(), "unregistered service: ghost")
}

func TestHubCycle(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(NewFunc("a", []string{"b"}, nil, nil)))
	require.NoError(t, h.Register(NewFunc("b", []string{"a"}, nil, nil)))
	assert.ErrorIs(t, h.InitAll(), ErrCircularDependency)
}

func TestHubStartRollback(t *testing.T) {
	rec := &recorder{}
	h := NewHub(nil)
	require.NoError(t, h.Register(rec.svc("a")))
	boom := errors.New("boom")
	require.NoError(t, h.Register(NewFunc("b", []string{"a"}, func() error { return boom }, nil)))

	require.NoError(t, h.InitAll())
	err := h.StartAll()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"start:a", "stop:a"}, rec.calls)

	h.StopAll()
	assert.Len(t, rec.calls, 2, "rolled back services are not stopped twice")
}

func TestHubStartBeforeInit(t *testing.T) {
	h := NewHub(nil)
	require.NoError(t, h.Register(NewFunc("a", nil, nil, nil)))
	assert.Error(t, h.StartAll())
}

func TestHubLookup(t *testing.T) {
	h := NewHub(nil)
	f := NewFunc("clock", nil, nil, nil)
	require.NoError(t, h.Register(f))

	got, ok := h.Get("clock")
	assert.True(t, ok)
	assert.Same(t, f, got)
	assert.Same(t, f, MustGet[*Func](h, "clock"))
	assert.Panics(t, func() { MustGet[*Func](h, "missing") })
	assert.Equal(t, []string{"clock"}, h.Names())
}

func TestFuncStopIdempotent(t *testing.T) {
	n := 0
	f := NewFunc("x", nil, nil, func() error { n++; return nil })
	require.NoError(t, f.Start())
	require.NoError(t, f.Stop())
	require.NoError(t, f.Stop())
	assert.Equal(t, 1, n)
}
