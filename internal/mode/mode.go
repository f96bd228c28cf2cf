package mode

// Flags is the engine's power and display state. LowBitAmbient and
// BurnInProtection are display capabilities fixed before the first frame.
type Flags struct {
	Visible          bool
	Ambient          bool
	Muted            bool
	LowBitAmbient    bool
	BurnInProtection bool
}

// ShouldRun reports whether the per-second timer must be running.
func (f Flags) ShouldRun() bool { return f.Visible && !f.Ambient }

// UseBlack reports whether the background must be a flat black fill.
func (f Flags) UseBlack() bool { return f.Ambient && (f.LowBitAmbient || f.BurnInProtection) }

// UseGray reports whether the grayscale background is drawn.
func (f Flags) UseGray() bool { return f.Ambient && !f.LowBitAmbient && !f.BurnInProtection }

// UseShadows reports whether hands and ticks get the glow effect.
func (f Flags) UseShadows() bool { return !f.Ambient }

// NeedsGrayLayer reports whether a grayscale background must be prepared.
func (f Flags) NeedsGrayLayer() bool { return !f.LowBitAmbient && !f.BurnInProtection }

// Listener is told about transitions.
type Listener interface {
	// RunStateChanged follows every visible or ambient change.
	RunStateChanged(run bool)
	// StyleChanged follows every visible or ambient change.
	StyleChanged()
	MuteChanged(muted bool)
}

// State is the visible/ambient/muted state machine. It has no terminal
// state. It is only used from the engine's event loop.
type State struct {
	flags    Flags
	frozen   bool
	listener Listener
}

func New(l Listener) *State { return &State{listener: l} }

func (s *State) Flags() Flags { return s.flags }

func (s *State) ShouldRun() bool { return s.flags.ShouldRun() }

// Frozen reports whether capabilities can no longer change.
func (s *State) Frozen() bool { return s.frozen }

// SetVisible updates visibility. It reports whether anything changed.
func (s *State) SetVisible(visible bool) bool {
	if s.flags.Visible == visible {
		return false
	}
	s.flags.Visible = visible
	s.runChanged()
	return true
}

// SetAmbient updates the ambient flag. It reports whether anything changed.
func (s *State) SetAmbient(ambient bool) bool {
	if s.flags.Ambient == ambient {
		return false
	}
	s.flags.Ambient = ambient
	s.runChanged()
	return true
}

// SetMuted updates the muted flag. It reports whether anything changed.
func (s *State) SetMuted(muted bool) bool {
	if s.flags.Muted == muted {
		return false
	}
	s.flags.Muted = muted
	if s.listener != nil {
		s.listener.MuteChanged(muted)
	}
	return true
}

// SetCapabilities records the display capabilities. After Freeze it does
// nothing and returns false.
func (s *State) SetCapabilities(lowBit, burnIn bool) bool {
	if s.frozen {
		return false
	}
	s.flags.LowBitAmbient = lowBit
	s.flags.BurnInProtection = burnIn
	return true
}

// Freeze locks the capabilities. The engine calls it when it draws its
// first frame.
func (s *State) Freeze() { s.frozen = true }

func (s *State) runChanged() {
	if s.listener == nil {
		return
	}
	s.listener.RunStateChanged(s.flags.ShouldRun())
	s.listener.StyleChanged()
}
