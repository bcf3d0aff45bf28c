// Package action implements the action library: timeline-driven move
// definitions keyed by a stable FNV-1a hash, plus command selection
// per archetype. Dispatch is by iterating plain value slices, never by
// interface polymorphism, so a tick stays allocation-free and the
// whole library is trivially serializable.
//
// Grounded in the teacher's internal/game/animation.go (wind-up/active/
// recovery phase timing per weapon) and weapons.go (per-weapon attack
// table), reworked from wall-clock seconds into tick-indexed frame
// arrays with integer hitbox geometry instead of angle/range floats.
package action

import "rollback-core/internal/simerr"

// Command is a button-derived move request. Only one command is acted
// on per tick, chosen by priority in Select.
type Command uint8

const (
	CommandNone Command = iota
	CommandAttack
	CommandSpecial
	CommandDefend
)

// FrameData is one frame's worth of root-motion override and cancel
// state within an ActionDef's timeline.
type FrameData struct {
	VelX, VelY int32
	Cancelable bool
	Hitstun    int16
}

// HitboxEvent is an active hitbox window within an action's timeline.
type HitboxEvent struct {
	StartFrame, EndFrame int16
	OffsetX, OffsetY     int32
	Width, Height        int32
	Damage               int16
	BaseKnockback        int32
	KnockbackGrowth      int32
	Hitstun              int16
	Disjoint             bool
}

// ProjectileSpawn fires a projectile at a fixed frame in the timeline.
type ProjectileSpawn struct {
	Frame            int16
	OffsetX, OffsetY int32
	VelX, VelY       int32
	Type             int32
	Lifetime         int16
}

// Def is a complete action definition: a fixed-length timeline plus
// ordered hitbox and spawn event lists.
type Def struct {
	ID            uint32
	Name          string
	TotalFrames   int16
	Frames        []FrameData
	Hitboxes      []HitboxEvent
	Spawns        []ProjectileSpawn
	IgnoreGravity bool
}

// FNV-1a constants fixed by the wire format; action ids must stay
// stable across builds and targets.
const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// HashName computes the stable 32-bit action id for a canonical name.
func HashName(name string) uint32 {
	h := fnvOffset
	for i := 0; i < len(name); i++ {
		h ^= uint32(name[i])
		h *= fnvPrime
	}
	return h
}

type bindingKey struct {
	archetype int32
	command   Command
}

// Library answers the two queries the simulation needs: lookup by
// stable id, and command selection per archetype.
type Library struct {
	actions  map[uint32]Def
	bindings map[bindingKey]uint32
}

// NewLibraryFromActions builds a Library with no command bindings,
// indexed only by action id. Useful for callers (combat resolution
// tests, tooling) that need Lookup without archetype selection.
func NewLibraryFromActions(defs ...Def) *Library {
	l := &Library{
		actions:  make(map[uint32]Def, len(defs)),
		bindings: make(map[bindingKey]uint32),
	}
	for _, d := range defs {
		l.actions[d.ID] = d
	}
	return l
}

// Lookup returns the action definition for actionID, or
// ErrUnknownAction if none is registered.
func (l *Library) Lookup(actionID uint32) (Def, error) {
	if actionID == 0 {
		return Def{}, simerr.ErrUnknownAction
	}
	d, ok := l.actions[actionID]
	if !ok {
		return Def{}, simerr.ErrUnknownAction
	}
	return d, nil
}

// Select resolves the highest-priority command present in inputBits
// (ATTACK > SPECIAL > DEFEND) to an action for the given archetype.
// If the archetype has no direct binding for that command, it falls
// back to archetype 0's binding; usedFallback reports whether that
// happened, so callers that care (e.g. the test harness) can log it
// without it being silently indistinguishable on the wire — the
// returned Def still carries its own real id either way.
func (l *Library) Select(archetype int32, inputBits uint16) (def Def, usedFallback bool, ok bool) {
	cmd := commandFromBits(inputBits)
	if cmd == CommandNone {
		return Def{}, false, false
	}

	if id, found := l.bindings[bindingKey{archetype, cmd}]; found {
		d := l.actions[id]
		return d, false, true
	}

	if id, found := l.bindings[bindingKey{0, cmd}]; found {
		d := l.actions[id]
		return d, true, true
	}

	return Def{}, false, false
}

// LookupWithOrigin is an alias of Select: same arguments, same results,
// including the usedFallback flag that tells "resolved via the
// archetype-0 fallback" apart from a direct binding.
func (l *Library) LookupWithOrigin(archetype int32, inputBits uint16) (def Def, usedFallback bool, ok bool) {
	return l.Select(archetype, inputBits)
}

// Bit positions, matching internal/inputframe's frozen layout.
const (
	bitAttack  = 5
	bitSpecial = 6
	bitDefend  = 7
)

func commandFromBits(bits uint16) Command {
	switch {
	case bits&(1<<bitAttack) != 0:
		return CommandAttack
	case bits&(1<<bitSpecial) != 0:
		return CommandSpecial
	case bits&(1<<bitDefend) != 0:
		return CommandDefend
	default:
		return CommandNone
	}
}
