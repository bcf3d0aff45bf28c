// Package simstate defines the value types a tick reads and mutates:
// PlayerState, ProjectileState, and the GameState that owns fixed-
// capacity arrays of both. GameState exclusively owns its arrays —
// nothing aliases into them — and DeepCopy covers every field
// (including the zeroed tail of the projectile array and the
// validation fields) so two copies always hash equal.
//
// Grounded in the teacher's internal/game/game_snapshot.go value-type
// PlayerSnapshot/ProjectileSnapshot pattern, but turned into the
// authoritative simulation state itself (not a read-only render copy)
// and rebuilt on fixed-capacity arrays instead of slices so no
// allocation occurs once a GameState is constructed.
package simstate

// MaxPlayers and MaxProjectiles bound the fixed-capacity arrays every
// GameState carries.
const (
	MaxPlayers     = 2
	MaxProjectiles = 64
)

// Facing values.
const (
	FacingLeft  int32 = -1
	FacingRight int32 = 1
)

// PlayerState is a pure value: fixed-point position/velocity, facing,
// grounded flag, health, and current action progress. Hurtbox geometry
// is derived from position plus character.Config, not stored here.
type PlayerState struct {
	PosX, PosY int32
	VelX, VelY int32
	Facing     int32
	Grounded   int32 // 0 or 1

	Health int16

	CurrentActionID uint32 // 0 = idle
	ActionFrameIndex int16
	HitstunRemaining int16
}

// ProjectileState is a pure value describing one live (or inactive)
// projectile slot.
type ProjectileState struct {
	UID              int32
	Active           int32 // 0 or 1
	PosX, PosY       int32
	VelX, VelY       int32
	LifetimeRemaining int16
}

// GameState is the entire deterministic world at one tick. It
// exclusively owns the arrays below; no other value may alias into
// them.
type GameState struct {
	FrameIndex int32

	NextProjectileUID    int32
	ActiveProjectileCount int32

	Players     [MaxPlayers]PlayerState
	Projectiles [MaxProjectiles]ProjectileState

	LastValidatedHash  uint32
	LastValidatedFrame int32
}

// NewGameState returns a freshly initialized state: frame 0, no
// projectiles, LastValidatedFrame at its -1 sentinel.
func NewGameState() GameState {
	return GameState{
		LastValidatedFrame: -1,
	}
}

// DeepCopy copies every field of s into dst, including the inactive
// tail of the projectile array and the validation fields, so that
// hash(s) == hash(dst) always holds. No allocation occurs; dst must
// already exist (e.g. a slot inside a preallocated rollback ring).
func (s *GameState) DeepCopy(dst *GameState) {
	*dst = *s
}
