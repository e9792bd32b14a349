package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds stored labels in bytes; an artifact handle is the longest label published
const MaxLabelLen = 64

// Label is an atomic short string such as a phase name or artifact handle
// Zero value reads ""
type Label struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, cut to MaxLabelLen on a rune boundary
func (l *Label) Store(val string) {
	l.ptr.Store(clip(val))
}

// Swap sets the label and returns the previous one
func (l *Label) Swap(val string) string {
	if old := l.ptr.Swap(clip(val)); old != nil {
		return *old
	}
	return ""
}

// Load returns the current label
func (l *Label) Load() string {
	if p := l.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

func clip(val string) *string {
	if len(val) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(val[cut]) {
			cut--
		}
		val = val[:cut]
	}
	return &val
}
