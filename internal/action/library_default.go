package action

// archetypeNames mirrors the teacher's weapon roster
// (internal/game/weapons.go) plus the tenth "duelist" archetype added
// in SPEC_FULL.md to round the table out to ten entries. Names are the
// canonical strings hashed into stable action ids.
var archetypeNames = [10]string{
	"fists", "knife", "sword", "spear", "axe",
	"bow", "scythe", "katana", "hammer", "duelist",
}

// archetypesWithSpecial lists which archetypes get their own SPECIAL
// binding; the rest fall back to archetype 0 ("fists") for SPECIAL, so
// the fallback path documented in action.go is concretely exercised.
var archetypesWithSpecial = map[int32]bool{
	0: true, 2: true, 4: true, 5: true, 6: true, 8: true,
}

// NewDefaultLibrary builds the standard action set: one ATTACK and
// DEFEND per archetype, plus SPECIAL for the archetypes listed in
// archetypesWithSpecial (others resolve SPECIAL via the archetype-0
// fallback).
func NewDefaultLibrary() *Library {
	l := &Library{
		actions:  make(map[uint32]Def),
		bindings: make(map[bindingKey]uint32),
	}

	for id := int32(0); id < int32(len(archetypeNames)); id++ {
		name := archetypeNames[id]

		attack := buildMeleeAttack(name, id)
		l.register(id, CommandAttack, attack)

		defend := buildDefend(name)
		l.register(id, CommandDefend, defend)

		if archetypesWithSpecial[id] {
			special := buildSpecial(name, id)
			l.register(id, CommandSpecial, special)
		}
	}

	return l
}

func (l *Library) register(archetype int32, cmd Command, d Def) {
	l.actions[d.ID] = d
	l.bindings[bindingKey{archetype, cmd}] = d.ID
}

// buildMeleeAttack constructs a generic 18-frame swing: 4 frames
// wind-up, a 5-frame active hitbox window (frames 4-8 inclusive), 9
// frames of recovery. The
// bow archetype spawns a projectile instead of carrying a melee
// hitbox, grounded in the teacher's animation.go distinction between
// melee hitbox types and HitboxProjectile (handled by a separate
// entity, never the melee resolver).
func buildMeleeAttack(name string, archetype int32) Def {
	const total = 18
	frames := make([]FrameData, total)
	frames[0] = FrameData{VelX: 500, Cancelable: false}
	for i := 1; i < total; i++ {
		frames[i] = FrameData{Cancelable: i >= total-4}
	}

	d := Def{
		ID:          HashName(name + ":attack"),
		Name:        name + ":attack",
		TotalFrames: total,
		Frames:      frames,
	}

	if archetype == 5 { // bow: ranged, no melee hitbox
		d.Spawns = []ProjectileSpawn{
			{Frame: 6, OffsetX: 900, OffsetY: 900, VelX: 4500, VelY: 0, Type: 0, Lifetime: 90},
		}
		return d
	}

	d.Hitboxes = []HitboxEvent{
		{
			StartFrame: 4, EndFrame: 8,
			OffsetX: 900, OffsetY: 900, Width: 700, Height: 900,
			Damage: 10, BaseKnockback: 2500, KnockbackGrowth: 120,
			Hitstun: 14,
		},
	}
	return d
}

// buildSpecial constructs a higher-commitment, higher-payoff move: a
// longer wind-up, a wider/longer hitbox window, more damage and
// knockback, mirroring the teacher's combo "finisher" entries in
// combat.go's DefaultComboDefinitions (slow but powerful).
func buildSpecial(name string, archetype int32) Def {
	const total = 28
	frames := make([]FrameData, total)
	for i := range frames {
		frames[i] = FrameData{Cancelable: i >= total-6}
	}

	d := Def{
		ID:          HashName(name + ":special"),
		Name:        name + ":special",
		TotalFrames: total,
		Frames:      frames,
	}

	if archetype == 5 {
		d.Spawns = []ProjectileSpawn{
			{Frame: 10, OffsetX: 900, OffsetY: 900, VelX: 6500, VelY: 0, Type: 1, Lifetime: 120},
		}
		return d
	}

	d.Hitboxes = []HitboxEvent{
		{
			StartFrame: 10, EndFrame: 16,
			OffsetX: 1100, OffsetY: 900, Width: 1000, Height: 1100,
			Damage: 22, BaseKnockback: 4500, KnockbackGrowth: 220,
			Hitstun: 22,
		},
	}
	return d
}

// buildDefend constructs a guard pose: no hitbox, not cancelable until
// the final 3 frames. Its frames carry zero root-motion velocity, and
// zero components leave velocity untouched, so existing velocity is only
// slowed by friction while directional input is ignored.
func buildDefend(name string) Def {
	const total = 14
	frames := make([]FrameData, total)
	for i := range frames {
		frames[i] = FrameData{VelX: 0, VelY: 0, Cancelable: i >= total-3}
	}

	return Def{
		ID:          HashName(name + ":defend"),
		Name:        name + ":defend",
		TotalFrames: total,
		Frames:      frames,
	}
}
