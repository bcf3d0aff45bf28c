// Package projectile implements sub-stepped, anti-tunneling projectile
// movement, lifetime expiry, and active-prefix compaction over a
// GameState's fixed-capacity projectile array.
//
// Grounded in the teacher's internal/game/projectile.go (Update/
// CheckHit/trail-ring pattern) and engine.go's updateProjectiles
// zero-allocation in-place compaction, reworked from float64 pixels-
// per-tick motion into fixed-point sub-stepped sweeps so a fast
// projectile cannot skip through a thin obstacle between ticks.
package projectile

import (
	"rollback-core/internal/fixedpoint"
	"rollback-core/internal/geometry"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
)

// substepThreshold is the anti-tunneling velocity threshold in
// fixed-point units: the smallest sensible projectile dimension over
// one tick.
const substepThreshold = 175

// maxSubsteps caps worst-case substep throughput per projectile.
const maxSubsteps = 32

// halfSize is half the side length of a projectile's square collision box.
const halfSize = 20 * 1000 / 1000 / 2 // PROJECTILE_SIZE = 20*SCALE/1000, halved

// Update advances every active projectile in state by one tick: it
// decrements lifetime, sub-steps through the stage, and tests for
// collision. Survivors are compacted to the active prefix with a
// stable write-index pass; vacated slots are zeroed.
func Update(state *simstate.GameState, m stage.MapData) {
	write := int32(0)
	count := state.ActiveProjectileCount

	for read := int32(0); read < count; read++ {
		proj := state.Projectiles[read]
		if proj.Active == 0 {
			continue
		}

		proj.LifetimeRemaining--
		if proj.LifetimeRemaining <= 0 {
			continue
		}

		if !sweep(&proj, m) {
			continue
		}

		state.Projectiles[write] = proj
		write++
	}

	for i := write; i < simstate.MaxProjectiles; i++ {
		state.Projectiles[i] = simstate.ProjectileState{}
	}

	state.ActiveProjectileCount = write
}

// sweep advances proj through k substeps, testing each intermediate
// position against the stage's solid blocks and kill floor. Returns
// false if the projectile collided and should be deactivated.
func sweep(proj *simstate.ProjectileState, m stage.MapData) bool {
	speed := fixedpoint.Max(fixedpoint.Abs(proj.VelX), fixedpoint.Abs(proj.VelY))
	k := speed / substepThreshold
	k = fixedpoint.Clamp(k, 1, maxSubsteps)

	stepX := proj.VelX / k
	stepY := proj.VelY / k

	for i := int32(0); i < k; i++ {
		proj.PosX += stepX
		proj.PosY += stepY

		if proj.PosY < m.KillFloorY {
			return false
		}

		box := geometry.FromCenter(proj.PosX, proj.PosY, halfSize, halfSize)
		for _, block := range m.Solids {
			if geometry.Overlaps(box, block) {
				return false
			}
		}
	}

	return true
}

// Spawn appends a new projectile at the end of the active prefix if
// there is room. Inactive slots inside the prefix are not searched or
// reused; Update compacts the prefix every tick. Returns the slot index,
// or -1 once ActiveProjectileCount has reached MaxProjectiles
// (SpawnRejected, silent per §7).
func Spawn(state *simstate.GameState, posX, posY, velX, velY int32, lifetime int16) int32 {
	if state.ActiveProjectileCount >= simstate.MaxProjectiles {
		return -1
	}

	idx := state.ActiveProjectileCount
	state.Projectiles[idx] = simstate.ProjectileState{
		UID:               state.NextProjectileUID,
		Active:            1,
		PosX:              posX,
		PosY:              posY,
		VelX:              velX,
		VelY:              velY,
		LifetimeRemaining: lifetime,
	}
	state.NextProjectileUID++
	state.ActiveProjectileCount++
	return idx
}
