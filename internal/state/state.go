package state

import (
	"sync"
	"time"
)

// Phase is the redraw status of the face.
type Phase int

const (
	BOOTING Phase = iota
	// TICKING means the per-second timer is armed.
	TICKING
	// IDLE means the face is drawn on demand only (ambient or hidden).
	IDLE
	STOPPED
)

func (p Phase) String() string {
	switch p {
	case BOOTING:
		return "booting"
	case TICKING:
		return "ticking"
	case IDLE:
		return "idle"
	case STOPPED:
		return "stopped"
	default:
		return "unknown"
	}
}

type ModeInfo struct {
	Visible          bool
	Ambient          bool
	Muted            bool
	LowBitAmbient    bool
	BurnInProtection bool
	// Frozen is set once the first frame fixed the display capabilities.
	Frozen bool
}

type FrameInfo struct {
	Count      int64
	At         time.Time
	Background string
	SecondHand bool
	Date       string
	Time       string
	Battery    string
}

type PaletteInfo struct {
	Hand      string
	Pin       string
	Highlight string
	Shadow    string
}

type State struct {
	Phase    Phase
	Mode     ModeInfo
	Frame    FrameInfo
	Palette  PaletteInfo
	Timezone string
	Width    int
	Height   int
}

// Store publishes the engine's view of the face to other goroutines. Only
// the engine loop writes to it.
type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Phase: BOOTING}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetPhase(phase Phase) {
	store.mu.Lock()
	store.state.Phase = phase
	store.mu.Unlock()
}

func (store *Store) UpdateMode(mode ModeInfo) {
	store.mu.Lock()
	store.state.Mode = mode
	store.mu.Unlock()
}

func (store *Store) UpdateFrame(frame FrameInfo) {
	store.mu.Lock()
	store.state.Frame = frame
	store.mu.Unlock()
}

func (store *Store) UpdatePalette(palette PaletteInfo) {
	store.mu.Lock()
	store.state.Palette = palette
	store.mu.Unlock()
}

func (store *Store) SetTimezone(name string) {
	store.mu.Lock()
	store.state.Timezone = name
	store.mu.Unlock()
}

func (store *Store) SetSize(width, height int) {
	store.mu.Lock()
	store.state.Width, store.state.Height = width, height
	store.mu.Unlock()
}
