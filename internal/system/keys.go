package system

import "encoding/binary"

// Key is a face control key.
type Key int

const (
	KeyNone Key = iota
	KeyAmbient
	KeyMute
	KeyVisible
	KeyExit
)

func (k Key) String() string {
	switch k {
	case KeyAmbient:
		return "ambient"
	case KeyMute:
		return "mute"
	case KeyVisible:
		return "visible"
	case KeyExit:
		return "exit"
	}
	return "none"
}

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyF1 = 59
	keyF2 = 60
	keyF3 = 61
	keyF4 = 62
)

var keyCodes = map[uint16]Key{
	keyF1: KeyAmbient,
	keyF2: KeyMute,
	keyF3: KeyVisible,
	keyF4: KeyExit,
}

// parseKeyPresses decodes a buffer of input_event records and returns the
// control keys pressed in it. Releases and autorepeat are ignored.
func parseKeyPresses(buf []byte, tvSize int) []Key {
	eventSize := tvSize + 2 + 2 + 4
	var keys []Key
	for off := 0; off+eventSize <= len(buf); off += eventSize {
		rec := buf[off : off+eventSize]
		// type and code are immediately after timeval.
		typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
		code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
		if typ != evKey || value != 1 {
			continue
		}
		if k, ok := keyCodes[code]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}
