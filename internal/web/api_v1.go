package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rook-computer/clockface/internal/display"
	"github.com/rook-computer/clockface/internal/state"
)

// maxBodyBytes bounds request bodies; every request is a tiny JSON object.
const maxBodyBytes = 1 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type boolRequest struct {
	Value *bool `json:"value"`
}

type batteryRequest struct {
	Percent *int `json:"percent"`
}

type modeResponse struct {
	Visible          bool `json:"visible"`
	Ambient          bool `json:"ambient"`
	Muted            bool `json:"muted"`
	LowBitAmbient    bool `json:"lowBitAmbient"`
	BurnInProtection bool `json:"burnInProtection"`
	Frozen           bool `json:"frozen"`
}

type frameResponse struct {
	Count      int64     `json:"count"`
	At         time.Time `json:"at"`
	Background string    `json:"background"`
	SecondHand bool      `json:"secondHand"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Battery    string    `json:"battery"`
}

type paletteResponse struct {
	Hand      string `json:"hand"`
	Pin       string `json:"pin"`
	Highlight string `json:"highlight"`
	Shadow    string `json:"shadow"`
}

type stateResponse struct {
	Phase    string          `json:"phase"`
	Mode     modeResponse    `json:"mode"`
	Frame    frameResponse   `json:"frame"`
	Palette  paletteResponse `json:"palette"`
	Timezone string          `json:"timezone"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
}

func toStateResponse(s state.State) stateResponse {
	return stateResponse{
		Phase: s.Phase.String(),
		Mode: modeResponse{
			Visible:          s.Mode.Visible,
			Ambient:          s.Mode.Ambient,
			Muted:            s.Mode.Muted,
			LowBitAmbient:    s.Mode.LowBitAmbient,
			BurnInProtection: s.Mode.BurnInProtection,
			Frozen:           s.Mode.Frozen,
		},
		Frame: frameResponse{
			Count:      s.Frame.Count,
			At:         s.Frame.At,
			Background: s.Frame.Background,
			SecondHand: s.Frame.SecondHand,
			Date:       s.Frame.Date,
			Time:       s.Frame.Time,
			Battery:    s.Frame.Battery,
		},
		Palette:  paletteResponse(s.Palette),
		Timezone: s.Timezone,
		Width:    s.Width,
		Height:   s.Height,
	}
}

func apiV1Router(deps APIV1Deps) http.Handler {
	deps = deps.withDefaults()
	mux := http.NewServeMux()
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) { handleState(w, r, deps) })
	mux.HandleFunc("/visible", boolHandler(deps.Face.NotifyVisible))
	mux.HandleFunc("/ambient", boolHandler(deps.Face.NotifyAmbient))
	mux.HandleFunc("/muted", boolHandler(deps.Face.NotifyMuted))
	mux.HandleFunc("/battery", func(w http.ResponseWriter, r *http.Request) { handleBattery(w, r, deps) })
	mux.HandleFunc("/timezone", func(w http.ResponseWriter, r *http.Request) { handleTimezone(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	return mux
}

func handleState(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, toStateResponse(deps.State.Snapshot()))
}

// boolHandler accepts POST {"value": bool} and forwards it to notify.
func boolHandler(notify func(bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}
		var req boolRequest
		if err := decodeBody(r, &req); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
			return
		}
		if req.Value == nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_body", `"value" is required`)
			return
		}
		notify(*req.Value)
		writeJSON(w, http.StatusAccepted, okResponse{OK: true})
	}
}

func handleBattery(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	var req batteryRequest
	if err := decodeBody(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if req.Percent == nil || *req.Percent < -1 || *req.Percent > 100 {
		writeAPIError(w, http.StatusBadRequest, "invalid_percent", `"percent" must be -1..100`)
		return
	}
	deps.Face.NotifyBatteryChanged(*req.Percent)
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleTimezone(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	deps.Face.NotifyTimezoneChanged()
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	// Encode first so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := deps.Frames.WritePNG(&buf); err != nil {
		if errors.Is(err, display.ErrNoFrame) {
			writeAPIError(w, http.StatusServiceUnavailable, "no_frame", err.Error())
			return
		}
		writeAPIError(w, http.StatusInternalServerError, "encode_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
