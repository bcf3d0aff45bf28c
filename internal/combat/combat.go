// Package combat resolves hitbox-vs-hurtbox collisions, applies
// weight-scaled knockback, and excludes self-hits by attacker
// identity rather than by geometry.
//
// Grounded in the teacher's internal/game/hitbox.go (shaped hitbox
// test) and engine.go's ProcessAttack (damage -> knockback -> hitstun
// -> clear current action), reworked from angle/range float checks
// into fixed-point AABB overlap, and from the teacher's one-attacker-
// at-a-time call site into a per-tick resolver that walks every live
// attacker in a fixed, deterministic order.
package combat

import (
	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/fixedpoint"
	"rollback-core/internal/geometry"
	"rollback-core/internal/simstate"
)

// Resolve walks attacker index ascending, then event index ascending,
// per §4.H. For every living attacker mid-action whose hitbox events
// are active this frame, it tests the mirrored world-space hitbox
// against every other living player's hurtbox and applies damage,
// knockback, and hitstun on overlap. It returns, per player index,
// whether that player was hit this tick — the simulation tick's action-
// progression phase uses this to skip that player's hitstun decrement
// on the same frame the hit landed.
func Resolve(state *simstate.GameState, configs [simstate.MaxPlayers]character.Config, lib *action.Library) (hitThisTick [simstate.MaxPlayers]bool) {
	for attackerIdx := 0; attackerIdx < simstate.MaxPlayers; attackerIdx++ {
		attacker := &state.Players[attackerIdx]
		if attacker.Health <= 0 || attacker.CurrentActionID == 0 {
			continue
		}

		def, err := lib.Lookup(attacker.CurrentActionID)
		if err != nil {
			continue
		}

		for eventIdx := range def.Hitboxes {
			ev := &def.Hitboxes[eventIdx]
			if int16(attacker.ActionFrameIndex) < ev.StartFrame || int16(attacker.ActionFrameIndex) > ev.EndFrame {
				continue
			}

			// Disjoint hitboxes carry no hurtbox of their own and so
			// never clash with an opposing attack; there is no
			// hitbox-vs-hitbox trade system here, so the flag does not
			// otherwise change resolution against a defender's hurtbox.
			hitbox := worldHitbox(attacker, ev)

			for defenderIdx := 0; defenderIdx < simstate.MaxPlayers; defenderIdx++ {
				if defenderIdx == attackerIdx {
					continue
				}
				defender := &state.Players[defenderIdx]
				if defender.Health <= 0 {
					continue
				}

				hurtbox := configs[defenderIdx].Hurtbox(defender.PosX, defender.PosY)
				if !geometry.Overlaps(hitbox, hurtbox) {
					continue
				}

				applyHit(attacker, defender, configs[defenderIdx], ev)
				hitThisTick[defenderIdx] = true
			}
		}
	}

	return hitThisTick
}

// worldHitbox mirrors the event's offset through the attacker's facing
// to produce a world-space AABB.
func worldHitbox(attacker *simstate.PlayerState, ev *action.HitboxEvent) geometry.AABB {
	offsetX := ev.OffsetX * attacker.Facing
	centerX := attacker.PosX + offsetX
	centerY := attacker.PosY + ev.OffsetY
	return geometry.FromCenter(centerX, centerY, ev.Width/2, ev.Height/2)
}

// applyHit computes knockback direction and magnitude, applies
// damage, hitstun, and velocity, and clears the defender's current
// action per §4.H.1-4.
func applyHit(attacker, defender *simstate.PlayerState, defenderCfg character.Config, ev *action.HitboxEvent) {
	dx := int64(defender.PosX - attacker.PosX)
	dy := int64(defender.PosY - attacker.PosY)
	distSq := dx*dx + dy*dy

	var dirX, dirY int32
	if distSq == 0 {
		dirX, dirY = 0, fixedpoint.Scale
	} else {
		dist := fixedpoint.SqrtI64(distSq)
		if dist == 0 {
			dirX, dirY = 0, fixedpoint.Scale
		} else {
			dirX = int32((dx * int64(fixedpoint.Scale)) / int64(dist))
			dirY = int32((dy * int64(fixedpoint.Scale)) / int64(dist))
		}
	}

	magnitude := ev.BaseKnockback + int32(ev.Damage)*ev.KnockbackGrowth
	weightFactor := fixedpoint.Scale * 100 / (100 + defenderCfg.Weight)

	scaled := fixedpoint.Mul(magnitude, weightFactor)
	defender.VelX += fixedpoint.Mul(dirX, scaled)
	defender.VelY += fixedpoint.Mul(dirY, scaled)

	defender.Health = maxI16(0, defender.Health-ev.Damage)
	defender.HitstunRemaining = ev.Hitstun
	defender.CurrentActionID = 0
	defender.ActionFrameIndex = 0
}

func maxI16(a, b int16) int16 {
	if a > b {
		return a
	}
	return b
}
