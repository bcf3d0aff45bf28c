// Package physics implements movement input, gravity, friction, and
// AABB-resolved stepping for a single player against the stage. Every
// branch is total — there is no failure mode, matching §4.F's
// "none thrown" contract.
//
// Grounded in the teacher's internal/game/player.go Update/
// ResolveCollisions pair (movement input -> friction -> gravity ->
// block resolution, in that order), reworked from float64 pixel math
// into fixed-point integer math with a deterministic tie-break on the
// axis of resolution instead of the teacher's ad hoc radius-distance
// push-apart.
package physics

import (
	"rollback-core/internal/character"
	"rollback-core/internal/fixedpoint"
	"rollback-core/internal/geometry"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
)

// RootMotion carries one action frame's velocity override, when an
// action is currently driving the player.
type RootMotion struct {
	VelX, VelY int32
	Present    bool
}

// ApplyMovementInput applies directional input, root motion override,
// friction, and jump initiation, per §4.F.1.
func ApplyMovementInput(p *simstate.PlayerState, cfg character.Config, inputX int32, jumpPressed bool, root RootMotion) {
	if root.Present {
		if root.VelX != 0 {
			p.VelX = root.VelX * p.Facing
		}
		if root.VelY != 0 {
			p.VelY = root.VelY * p.Facing
		}
	} else if inputX != 0 {
		p.VelX = inputX * cfg.WalkSpeed
		p.Facing = fixedpoint.Sign(inputX)
	}

	friction := cfg.AirFriction
	if p.Grounded != 0 {
		friction = cfg.GroundFriction
	}
	p.VelX = applyFriction(p.VelX, friction)

	if jumpPressed && p.Grounded != 0 {
		p.VelY = cfg.JumpForce
		p.Grounded = 0
	}
}

// ApplyActionFrameOverride re-applies an action's current-frame root
// motion on its own, independent of ApplyMovementInput's friction and
// jump handling. The simulation tick calls this during its dedicated
// action-physics phase, after input application has already run once;
// non-zero components override, zero components leave the field
// untouched, same rule as ApplyMovementInput's root-motion branch.
func ApplyActionFrameOverride(p *simstate.PlayerState, root RootMotion) {
	if !root.Present {
		return
	}
	if root.VelX != 0 {
		p.VelX = root.VelX * p.Facing
	}
	if root.VelY != 0 {
		p.VelY = root.VelY * p.Facing
	}
}

func applyFriction(vel, friction int32) int32 {
	if vel > 0 {
		return fixedpoint.Max(0, vel-friction)
	}
	if vel < 0 {
		return fixedpoint.Min(0, vel+friction)
	}
	return 0
}

// ApplyGravity applies gravity or, for a grounded player with residual
// upward velocity, clamps it to zero. Per §4.F.2, Y is up and gravity
// subtracts.
func ApplyGravity(p *simstate.PlayerState, cfg character.Config, ignoreGravity bool) {
	if ignoreGravity {
		return
	}

	if p.Grounded == 0 {
		p.VelY -= cfg.Gravity
		p.VelY = fixedpoint.Max(p.VelY, -cfg.MaxFallSpeed)
		return
	}

	if p.VelY < 0 {
		p.VelY = 0
	}
}

// StepAndCollide advances the player's position by its velocity and
// resolves overlap against every solid block in the stage, in array
// order. Equal-depth penetration resolves along X first (the tie-break
// fixed by SPEC_FULL.md §4.F.3). When the map sets side walls
// (RightWallX > LeftWallX), the hurtbox is then clamped between them and
// VelX zeroed on contact, so a player moving faster than a wall block is
// thick still stops at the wall. A player who crosses the kill floor
// respawns with zero velocity at a fixed spawn point; health is
// untouched — death is decided by health, not by falling.
func StepAndCollide(p *simstate.PlayerState, cfg character.Config, m stage.MapData) {
	newX := p.PosX + p.VelX
	newY := p.PosY + p.VelY

	for _, block := range m.Solids {
		box := cfg.Hurtbox(newX, newY)
		if !geometry.Overlaps(box, block) {
			continue
		}

		depthX, depthY := geometry.Penetration(box, block)
		if depthX <= 0 || depthY <= 0 {
			continue
		}

		if depthX <= depthY {
			if box.MinX < block.MinX {
				newX -= depthX
			} else {
				newX += depthX
			}
			p.VelX = 0
		} else {
			if box.MinY < block.MinY {
				newY -= depthY
				p.VelY = 0
			} else {
				newY += depthY
				p.VelY = 0
				p.Grounded = 1
			}
		}
	}

	if m.RightWallX > m.LeftWallX {
		half := cfg.HitboxWidth / 2
		if newX+half > m.RightWallX {
			newX = m.RightWallX - half
			p.VelX = 0
		} else if newX-half < m.LeftWallX {
			newX = m.LeftWallX + half
			p.VelX = 0
		}
	}

	if newY < m.KillFloorY {
		newX = 0
		newY = 2 * fixedpoint.Scale
		p.VelX = 0
		p.VelY = 0
	}

	p.PosX = newX
	p.PosY = newY
}
