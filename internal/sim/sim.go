// Package sim composes the fixed-point kernel, geometry, action
// library, physics, projectile, and combat systems into a single
// ordered Step function. Phase order is load-bearing: reordering
// phases changes outcomes and is a correctness bug, not a style
// choice.
//
// Grounded in the teacher's internal/game/engine.go Update loop
// (input -> physics -> collision -> combat -> cleanup, called once per
// server tick), reworked into ten explicit, independently testable
// phases operating on fixed-point state instead of the teacher's
// float64 entity-component update.
package sim

import (
	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/combat"
	"rollback-core/internal/inputframe"
	"rollback-core/internal/physics"
	"rollback-core/internal/projectile"
	"rollback-core/internal/simerr"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
	"rollback-core/internal/statehash"
)

// Validation carries the current tick's hash-check policy: how often
// to hash, and (when present) the externally supplied expected hash to
// compare against at this frame.
type Validation struct {
	HashPeriod  int32
	Expected    uint32
	HasExpected bool
}

// Step advances state by exactly one tick, in place, executing all ten
// phases in the fixed order required by §4.I. It never panics; the
// only error it can return is a desync at a validated frame.
func Step(
	state *simstate.GameState,
	in inputframe.InputFrame,
	m stage.MapData,
	configs [simstate.MaxPlayers]character.Config,
	lib *action.Library,
	v Validation,
) error {
	var roots [simstate.MaxPlayers]physics.RootMotion
	var ignoreGravity [simstate.MaxPlayers]bool

	// Phase 1: input application.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 {
			continue
		}

		cfg := configs[i]
		bits := in.InputBits[i]

		cancelable := p.CurrentActionID == 0
		if !cancelable {
			if def, err := lib.Lookup(p.CurrentActionID); err == nil {
				if idx := int(p.ActionFrameIndex); idx >= 0 && idx < len(def.Frames) {
					cancelable = def.Frames[idx].Cancelable
				}
			}
		}

		if cancelable && p.HitstunRemaining == 0 {
			if def, _, ok := lib.Select(cfg.ArchetypeID, bits); ok {
				p.CurrentActionID = def.ID
				p.ActionFrameIndex = 0
			}
		}

		roots[i], ignoreGravity[i] = currentRootMotion(lib, p)

		inputX := inputXFromBits(bits)
		jumpPressed := bits&(1<<inputframe.BitJump) != 0
		physics.ApplyMovementInput(p, cfg, inputX, jumpPressed, roots[i])
	}

	// Phase 2: action physics — reassert the current frame's root
	// motion independent of the friction/jump handling already run.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 || p.CurrentActionID == 0 {
			continue
		}
		physics.ApplyActionFrameOverride(p, roots[i])
	}

	// Phase 3: gravity.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 {
			continue
		}
		physics.ApplyGravity(p, configs[i], ignoreGravity[i])
	}

	// Phase 4: map stepping, in player-index order.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 {
			continue
		}
		physics.StepAndCollide(p, configs[i], m)
	}

	// Phase 5: action events — projectile spawns whose frame matches
	// the player's current action-frame index this tick.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 || p.CurrentActionID == 0 {
			continue
		}
		def, err := lib.Lookup(p.CurrentActionID)
		if err != nil {
			continue
		}
		for _, spawn := range def.Spawns {
			if spawn.Frame != p.ActionFrameIndex {
				continue
			}
			projectile.Spawn(
				state,
				p.PosX+spawn.OffsetX*p.Facing,
				p.PosY+spawn.OffsetY,
				spawn.VelX*p.Facing,
				spawn.VelY,
				spawn.Lifetime,
			)
		}
	}

	// Phase 6: combat resolution.
	hitThisTick := combat.Resolve(state, configs, lib)

	// Phase 7: projectile update.
	projectile.Update(state, m)

	// Phase 8: action progression.
	for i := 0; i < simstate.MaxPlayers; i++ {
		p := &state.Players[i]
		if p.Health <= 0 {
			continue
		}

		if !hitThisTick[i] && p.HitstunRemaining > 0 {
			p.HitstunRemaining--
		}

		if p.CurrentActionID == 0 {
			continue
		}
		p.ActionFrameIndex++
		if def, err := lib.Lookup(p.CurrentActionID); err == nil && p.ActionFrameIndex >= def.TotalFrames {
			p.CurrentActionID = 0
			p.ActionFrameIndex = 0
		}
	}

	// Phase 9: frame advance.
	state.FrameIndex++

	// Phase 10: validation.
	if v.HashPeriod > 0 && state.FrameIndex%v.HashPeriod == 0 {
		hash := statehash.Compute(state)
		if state.LastValidatedFrame != -1 && v.HasExpected && v.Expected != hash {
			return &simerr.DesyncError{
				Frame:    state.FrameIndex,
				Expected: v.Expected,
				Actual:   hash,
			}
		}
		state.LastValidatedHash = hash
		state.LastValidatedFrame = state.FrameIndex
	}

	return nil
}

// currentRootMotion reads the current action's frame data for the
// player's live action-frame index, if any is currently playing.
func currentRootMotion(lib *action.Library, p *simstate.PlayerState) (physics.RootMotion, bool) {
	if p.CurrentActionID == 0 {
		return physics.RootMotion{}, false
	}
	def, err := lib.Lookup(p.CurrentActionID)
	if err != nil {
		return physics.RootMotion{}, false
	}
	idx := int(p.ActionFrameIndex)
	if idx < 0 || idx >= len(def.Frames) {
		return physics.RootMotion{}, def.IgnoreGravity
	}
	frame := def.Frames[idx]
	return physics.RootMotion{VelX: frame.VelX, VelY: frame.VelY, Present: true}, def.IgnoreGravity
}

func inputXFromBits(bits uint16) int32 {
	var x int32
	if bits&(1<<inputframe.BitLeft) != 0 {
		x--
	}
	if bits&(1<<inputframe.BitRight) != 0 {
		x++
	}
	return x
}
