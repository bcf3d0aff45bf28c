// Package inputframe defines the per-tick input wire format: one
// 16-bit button bitmask per player, tagged by tick index. The bit
// layout and serialization are frozen; never renumber them.
package inputframe

import (
	"encoding/binary"

	"rollback-core/internal/simerr"
)

// MaxPlayers bounds the fixed-size bitmask array.
const MaxPlayers = 2

// Button bit positions within InputBits. Remaining bits are reserved
// and must be transmitted as 0.
const (
	BitUp = iota
	BitDown
	BitLeft
	BitRight
	BitJump
	BitAttack
	BitSpecial
	BitDefend
)

// WireSize is the exact serialized length of an InputFrame: 4 bytes of
// tick index plus 2 bytes per player.
const WireSize = 4 + 2*MaxPlayers

// InputFrame is the per-tick input for every player.
type InputFrame struct {
	TickIndex int32
	InputBits [MaxPlayers]uint16
}

// Held reports whether the given bit is set for player idx.
func (f InputFrame) Held(playerIdx int, bit uint) bool {
	return f.InputBits[playerIdx]&(1<<bit) != 0
}

// Serialize encodes f in big-endian, packed form: 4 bytes tickIndex,
// then 2 bytes per player in player-index order.
func (f InputFrame) Serialize() [WireSize]byte {
	var buf [WireSize]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(f.TickIndex))
	for i := 0; i < MaxPlayers; i++ {
		off := 4 + i*2
		binary.BigEndian.PutUint16(buf[off:off+2], f.InputBits[i])
	}
	return buf
}

// Deserialize decodes an InputFrame from buf. Buffers shorter than
// WireSize are rejected with ErrInvalidInput.
func Deserialize(buf []byte) (InputFrame, error) {
	if len(buf) < WireSize {
		return InputFrame{}, simerr.ErrInvalidInput
	}

	var f InputFrame
	f.TickIndex = int32(binary.BigEndian.Uint32(buf[0:4]))
	for i := 0; i < MaxPlayers; i++ {
		off := 4 + i*2
		f.InputBits[i] = binary.BigEndian.Uint16(buf[off : off+2])
	}
	return f, nil
}
