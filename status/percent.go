package status

import (
	"math"
	"sync/atomic"
)

// Percent is an atomic progress value held in [0, 100]
// Zero value reads 0
type Percent struct {
	bits atomic.Uint64
}

// Set stores pct clamped to [0, 100]; NaN stores 0
func (p *Percent) Set(pct float64) {
	switch {
	case math.IsNaN(pct) || pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	p.bits.Store(math.Float64bits(pct))
}

// Get returns the stored percentage
func (p *Percent) Get() float64 {
	return math.Float64frombits(p.bits.Load())
}
