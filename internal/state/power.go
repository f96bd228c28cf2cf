package state

import (
	"sync"
	"time"
)

// UnknownPercent is reported until a battery reading arrives.
const UnknownPercent = -1

type PowerSnapshot struct {
	Percent   int
	Source    string
	UpdatedAt time.Time
}

// Power holds the last battery reading. It is shared by the poller and the
// engine.
type Power struct {
	mu sync.RWMutex

	percent   int
	source    string
	updatedAt time.Time
}

var (
	powerOnce sync.Once
	power     *Power
)

func GetPower() *Power {
	powerOnce.Do(func() {
		power = &Power{percent: UnknownPercent}
	})
	return power
}

func (p *Power) Snapshot() PowerSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return PowerSnapshot{
		Percent:   p.percent,
		Source:    p.source,
		UpdatedAt: p.updatedAt,
	}
}

func (p *Power) Reset() {
	p.mu.Lock()
	p.percent = UnknownPercent
	p.source = ""
	p.updatedAt = time.Time{}
	p.mu.Unlock()
}

// Set records a reading and reports whether the percentage changed.
func (p *Power) Set(percent int, source string, at time.Time) bool {
	if percent < 0 {
		percent = UnknownPercent
	}
	if percent > 100 {
		percent = 100
	}
	p.mu.Lock()
	changed := p.percent != percent
	p.percent = percent
	p.source = source
	p.updatedAt = at
	p.mu.Unlock()
	return changed
}
