// Package character holds the read-only per-archetype tuning table
// the physics and combat systems are driven by. Grounded in the
// teacher's internal/game/weapons.go balance table (weapon-named
// entries with per-weapon stats) and combat.go's combo constants,
// reworked from floating per-second balance numbers into fixed-point
// milli-units with no wall-clock dependency.
package character

import (
	"rollback-core/internal/geometry"
	"rollback-core/internal/simerr"
)

// Config is a single archetype's tuning table. Copies are by value;
// there is no hidden sharing between holders of a Config.
type Config struct {
	ArchetypeID int32

	HitboxWidth  int32
	HitboxHeight int32
	HitboxOffset int32

	Weight int32

	WalkSpeed int32
	RunSpeed  int32
	AirSpeed  int32

	JumpForce    int32
	Gravity      int32
	MaxFallSpeed int32
	FastFallSpeed int32

	GroundFriction int32
	AirFriction    int32

	BaseHealth int16

	WeightFactorBase  int32
	HitstunMultiplier int32
}

const numArchetypes = 10

// table is the immutable, bootstrap-only archetype table. Indexed
// 0..9, named after the teacher's weapon roster (fists, knife, sword,
// spear, axe, bow, scythe, katana, hammer) plus a tenth "duelist"
// hybrid archetype that rounds the table out to ten entries.
var table = [numArchetypes]Config{
	0: { // fists — fast, light brawler
		ArchetypeID: 0, HitboxWidth: 900, HitboxHeight: 1800, HitboxOffset: 500,
		Weight: 80, WalkSpeed: 4200, RunSpeed: 6500, AirSpeed: 3800,
		JumpForce: 14000, Gravity: 900, MaxFallSpeed: 18000, FastFallSpeed: 24000,
		GroundFriction: 1200, AirFriction: 400, BaseHealth: 95,
		WeightFactorBase: 1000, HitstunMultiplier: 1000,
	},
	1: { // knife — quick skirmisher
		ArchetypeID: 1, HitboxWidth: 850, HitboxHeight: 1750, HitboxOffset: 550,
		Weight: 75, WalkSpeed: 4500, RunSpeed: 6800, AirSpeed: 4000,
		JumpForce: 14500, Gravity: 880, MaxFallSpeed: 17500, FastFallSpeed: 23500,
		GroundFriction: 1250, AirFriction: 420, BaseHealth: 90,
		WeightFactorBase: 950, HitstunMultiplier: 1050,
	},
	2: { // sword — balanced all-rounder
		ArchetypeID: 2, HitboxWidth: 950, HitboxHeight: 1850, HitboxOffset: 600,
		Weight: 95, WalkSpeed: 4000, RunSpeed: 6200, AirSpeed: 3600,
		JumpForce: 13500, Gravity: 950, MaxFallSpeed: 18500, FastFallSpeed: 24500,
		GroundFriction: 1100, AirFriction: 380, BaseHealth: 100,
		WeightFactorBase: 1000, HitstunMultiplier: 1000,
	},
	3: { // spear — long reach, slower
		ArchetypeID: 3, HitboxWidth: 1100, HitboxHeight: 1900, HitboxOffset: 700,
		Weight: 100, WalkSpeed: 3700, RunSpeed: 5700, AirSpeed: 3300,
		JumpForce: 13000, Gravity: 980, MaxFallSpeed: 18800, FastFallSpeed: 24800,
		GroundFriction: 1050, AirFriction: 360, BaseHealth: 105,
		WeightFactorBase: 1050, HitstunMultiplier: 950,
	},
	4: { // axe — heavy cleaver
		ArchetypeID: 4, HitboxWidth: 1000, HitboxHeight: 1900, HitboxOffset: 600,
		Weight: 120, WalkSpeed: 3500, RunSpeed: 5400, AirSpeed: 3000,
		JumpForce: 12500, Gravity: 1020, MaxFallSpeed: 19000, FastFallSpeed: 25000,
		GroundFriction: 950, AirFriction: 320, BaseHealth: 115,
		WeightFactorBase: 1150, HitstunMultiplier: 900,
	},
	5: { // bow — ranged specialist, fragile
		ArchetypeID: 5, HitboxWidth: 800, HitboxHeight: 1700, HitboxOffset: 500,
		Weight: 65, WalkSpeed: 4100, RunSpeed: 6300, AirSpeed: 3900,
		JumpForce: 14200, Gravity: 870, MaxFallSpeed: 17200, FastFallSpeed: 23200,
		GroundFriction: 1300, AirFriction: 440, BaseHealth: 80,
		WeightFactorBase: 850, HitstunMultiplier: 1100,
	},
	6: { // scythe — huge sweeping reach
		ArchetypeID: 6, HitboxWidth: 1150, HitboxHeight: 1950, HitboxOffset: 750,
		Weight: 105, WalkSpeed: 3600, RunSpeed: 5500, AirSpeed: 3100,
		JumpForce: 13200, Gravity: 1000, MaxFallSpeed: 18900, FastFallSpeed: 24900,
		GroundFriction: 1000, AirFriction: 340, BaseHealth: 100,
		WeightFactorBase: 1050, HitstunMultiplier: 950,
	},
	7: { // katana — precision combo fighter
		ArchetypeID: 7, HitboxWidth: 900, HitboxHeight: 1800, HitboxOffset: 600,
		Weight: 85, WalkSpeed: 4300, RunSpeed: 6600, AirSpeed: 3900,
		JumpForce: 14000, Gravity: 910, MaxFallSpeed: 18000, FastFallSpeed: 24000,
		GroundFriction: 1200, AirFriction: 400, BaseHealth: 92,
		WeightFactorBase: 980, HitstunMultiplier: 1020,
	},
	8: { // hammer — devastating, slow
		ArchetypeID: 8, HitboxWidth: 1050, HitboxHeight: 2000, HitboxOffset: 650,
		Weight: 135, WalkSpeed: 3300, RunSpeed: 5100, AirSpeed: 2800,
		JumpForce: 12000, Gravity: 1050, MaxFallSpeed: 19500, FastFallSpeed: 25500,
		GroundFriction: 900, AirFriction: 300, BaseHealth: 125,
		WeightFactorBase: 1250, HitstunMultiplier: 850,
	},
	9: { // duelist — agile hybrid rounding out the table
		ArchetypeID: 9, HitboxWidth: 880, HitboxHeight: 1780, HitboxOffset: 550,
		Weight: 78, WalkSpeed: 4600, RunSpeed: 7000, AirSpeed: 4200,
		JumpForce: 14800, Gravity: 860, MaxFallSpeed: 17000, FastFallSpeed: 23000,
		GroundFriction: 1350, AirFriction: 460, BaseHealth: 88,
		WeightFactorBase: 900, HitstunMultiplier: 1080,
	},
}

// GetDefault returns archetype id's tuning table by value. Ids outside
// [0, 9] fail with ErrUnknownArchetype.
func GetDefault(id int32) (Config, error) {
	if id < 0 || int(id) >= numArchetypes {
		return Config{}, simerr.ErrUnknownArchetype
	}
	return table[id], nil
}

// Count returns the number of archetypes in the table.
func Count() int {
	return numArchetypes
}

// Hurtbox builds this archetype's world-space hurtbox centered at
// (posX, posY) and raised by HitboxOffset, matching the convention
// used for attacker hitbox placement in combat.
func (c Config) Hurtbox(posX, posY int32) geometry.AABB {
	return geometry.FromCenter(posX, posY+c.HitboxOffset, c.HitboxWidth/2, c.HitboxHeight/2)
}
