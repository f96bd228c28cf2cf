package web

import (
	"errors"
	"io"

	"github.com/rook-computer/clockface/internal/state"
)

// FaceController is the engine's inbound event surface used by the API.
// Calls only enqueue events; they never block on rendering.
type FaceController interface {
	NotifyVisible(visible bool)
	NotifyAmbient(ambient bool)
	NotifyMuted(muted bool)
	NotifyBatteryChanged(percent int)
	NotifyTimezoneChanged()
}

// StateSource returns the published face state.
type StateSource interface {
	Snapshot() state.State
}

// FrameSource encodes the most recent frame.
type FrameSource interface {
	WritePNG(w io.Writer) error
}

type APIV1Deps struct {
	Face   FaceController
	State  StateSource
	Frames FrameSource
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Face == nil {
		out.Face = NoopFaceController{}
	}
	if out.State == nil {
		out.State = state.NewStore()
	}
	if out.Frames == nil {
		out.Frames = NoFrames{}
	}
	return out
}

type NoopFaceController struct{}

func (NoopFaceController) NotifyVisible(bool)       {}
func (NoopFaceController) NotifyAmbient(bool)       {}
func (NoopFaceController) NotifyMuted(bool)         {}
func (NoopFaceController) NotifyBatteryChanged(int) {}
func (NoopFaceController) NotifyTimezoneChanged()   {}

type NoFrames struct{}

func (NoFrames) WritePNG(io.Writer) error { return errors.New("frames not configured") }
