// Package statehash computes the 32-bit FNV-1a content hash used for
// desync detection between rollback peers. The field order is frozen
// by the wire contract: any change here breaks cross-build agreement.
//
// Grounded in the teacher's internal/game/event_log.go checksum helper
// (FNV-style fold over a fixed struct field order) and the action
// package's HashName, reworked into a whole-GameState digest instead
// of a per-event one.
package statehash

import "rollback-core/internal/simstate"

const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// hasher accumulates 32-bit words via FNV-1a, four bytes at a time, in
// big-endian order so the digest is independent of host endianness.
type hasher struct {
	h uint32
}

func newHasher() hasher {
	return hasher{h: fnvOffset}
}

func (hs *hasher) writeWord(w uint32) {
	hs.h ^= byte0(w)
	hs.h *= fnvPrime
	hs.h ^= byte1(w)
	hs.h *= fnvPrime
	hs.h ^= byte2(w)
	hs.h *= fnvPrime
	hs.h ^= byte3(w)
	hs.h *= fnvPrime
}

func byte0(w uint32) uint32 { return (w >> 24) & 0xff }
func byte1(w uint32) uint32 { return (w >> 16) & 0xff }
func byte2(w uint32) uint32 { return (w >> 8) & 0xff }
func byte3(w uint32) uint32 { return w & 0xff }

// Compute returns the FNV-1a digest over every deterministic field of
// state, in the fixed order: frameIndex; per-player fields in player
// index order; per-projectile-slot fields in slot order including
// inactive slots; nextProjectileUid; activeProjectileCount.
func Compute(state *simstate.GameState) uint32 {
	hs := newHasher()

	hs.writeWord(uint32(state.FrameIndex))

	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		hs.writeWord(uint32(p.PosX))
		hs.writeWord(uint32(p.PosY))
		hs.writeWord(uint32(p.VelX))
		hs.writeWord(uint32(p.VelY))
		hs.writeWord(uint32(p.Facing))
		hs.writeWord(uint32(p.Grounded))
		hs.writeWord(uint32(uint16(p.Health)))
		hs.writeWord(uint32(p.CurrentActionID))
		hs.writeWord(uint32(uint16(p.ActionFrameIndex)))
		hs.writeWord(uint32(uint16(p.HitstunRemaining)))
	}

	for i := 0; i < simstate.MaxProjectiles; i++ {
		pr := &state.Projectiles[i]
		hs.writeWord(uint32(pr.UID))
		hs.writeWord(uint32(pr.Active))
		hs.writeWord(uint32(pr.PosX))
		hs.writeWord(uint32(pr.PosY))
		hs.writeWord(uint32(pr.VelX))
		hs.writeWord(uint32(pr.VelY))
		hs.writeWord(uint32(uint16(pr.LifetimeRemaining)))
	}

	hs.writeWord(uint32(state.NextProjectileUID))
	hs.writeWord(uint32(state.ActiveProjectileCount))

	return hs.h
}
