// Package stage holds the immutable arena geometry a tick steps
// players and projectiles against. Nothing here is ever mutated by
// the simulation.
package stage

import "rollback-core/internal/geometry"

// MapData is an immutable set of solid blocks plus the kill floor and
// side walls. Bootstrap-only; never mutated by step.
type MapData struct {
	Solids    []geometry.AABB
	KillFloorY int32
	LeftWallX  int32
	RightWallX int32
}

// Default returns a small single-arena stage: a flat ground plane
// bounded by two solid side walls and no floating platforms, grounded
// in the teacher's fixed 1280x720 arena (internal/game/engine.go's
// worldWidth/Height), rescaled into fixed-point world units. The walls
// are ordinary solid blocks whose inner faces sit at LeftWallX/
// RightWallX; physics.StepAndCollide also clamps a player's hurtbox to
// [LeftWallX, RightWallX], so a player fast enough to cross a one-unit
// wall block in a single tick still stops at the boundary.
func Default() MapData {
	const scale = 1000
	leftWallX := int32(-10 * scale)
	rightWallX := int32(10 * scale)
	return MapData{
		Solids: []geometry.AABB{
			// Ground plane, one unit thick, spanning the arena.
			{MinX: leftWallX, MaxX: rightWallX, MinY: -1 * scale, MaxY: 0},
			// Left wall: a tall block whose inner (right) face is the boundary.
			{MinX: leftWallX - scale, MaxX: leftWallX, MinY: -5 * scale, MaxY: 100 * scale},
			// Right wall: a tall block whose inner (left) face is the boundary.
			{MinX: rightWallX, MaxX: rightWallX + scale, MinY: -5 * scale, MaxY: 100 * scale},
		},
		KillFloorY: -5 * scale,
		LeftWallX:  leftWallX,
		RightWallX: rightWallX,
	}
}
