package service

// Func adapts plain start/stop functions into a Service
type Func struct {
	name    string
	deps    []string
	StartFn func() error
	StopFn  func() error
	stopped bool
}

// NewFunc creates a Service named name that runs start and stop; either may be nil
func NewFunc(name string, deps []string, start, stop func() error) *Func {
	return &Func{name: name, deps: deps, StartFn: start, StopFn: stop}
}

func (f *Func) Name() string           { return f.name }
func (f *Func) Dependencies() []string { return f.deps }
func (f *Func) Init(...any) error      { return nil }

func (f *Func) Start() error {
	f.stopped = false
	if f.StartFn == nil {
		return nil
	}
	return f.StartFn()
}

func (f *Func) Stop() error {
	if f.stopped || f.StopFn == nil {
		return nil
	}
	f.stopped = true
	return f.StopFn()
}
