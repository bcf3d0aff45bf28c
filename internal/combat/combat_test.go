package combat

import (
	"testing"

	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/simstate"
)

func testConfigs(t *testing.T) [simstate.MaxPlayers]character.Config {
	t.Helper()
	var cfgs [simstate.MaxPlayers]character.Config
	for i := range cfgs {
		cfg, err := character.GetDefault(0)
		if err != nil {
			t.Fatalf("GetDefault: %v", err)
		}
		cfgs[i] = cfg
	}
	return cfgs
}

func libraryWithHit(hitstun int16, damage int16, baseKnockback, growth int32, disjoint bool) *action.Library {
	return action.NewLibraryFromActions(action.Def{
		ID:          1,
		Name:        "test_attack",
		TotalFrames: 10,
		Hitboxes: []action.HitboxEvent{
			{
				StartFrame: 0, EndFrame: 9,
				OffsetX: 0, OffsetY: 0,
				Width: 2000, Height: 2000,
				Damage:          damage,
				BaseKnockback:   baseKnockback,
				KnockbackGrowth: growth,
				Hitstun:         hitstun,
				Disjoint:        disjoint,
			},
		},
	})
}

func TestResolveAppliesDamageKnockbackAndHitstun(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(8, 10, 500, 100, false)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 100
	state.Players[0].Facing = simstate.FacingRight
	state.Players[0].CurrentActionID = 1
	state.Players[0].PosX, state.Players[0].PosY = 0, 0
	state.Players[1].PosX, state.Players[1].PosY = 0, 0

	Resolve(&state, cfgs, lib)

	if state.Players[1].Health != 90 {
		t.Errorf("defender health = %d, want 90", state.Players[1].Health)
	}
	if state.Players[1].HitstunRemaining != 8 {
		t.Errorf("defender hitstun = %d, want 8", state.Players[1].HitstunRemaining)
	}
	if state.Players[1].VelX == 0 && state.Players[1].VelY == 0 {
		t.Error("expected nonzero knockback velocity")
	}
	if state.Players[1].CurrentActionID != 0 {
		t.Error("expected defender's current action to be cleared on hit")
	}
}

func TestResolveZeroDistanceKnocksUpward(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, false)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 100
	state.Players[0].CurrentActionID = 1
	// Same position: distance is zero, direction must fall back to
	// straight up.
	state.Players[0].PosX, state.Players[0].PosY = 0, 0
	state.Players[1].PosX, state.Players[1].PosY = 0, 0

	Resolve(&state, cfgs, lib)

	if state.Players[1].VelX != 0 {
		t.Errorf("VelX = %d, want 0 on zero-distance fallback", state.Players[1].VelX)
	}
	if state.Players[1].VelY <= 0 {
		t.Errorf("VelY = %d, want positive (upward) on zero-distance fallback", state.Players[1].VelY)
	}
}

func TestResolveSkipsDeadAttacker(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, false)

	var state simstate.GameState
	state.Players[0].Health = 0
	state.Players[1].Health = 100
	state.Players[0].CurrentActionID = 1

	Resolve(&state, cfgs, lib)

	if state.Players[1].Health != 100 {
		t.Error("a dead attacker should not be able to land a hit")
	}
}

func TestResolveSkipsDeadDefender(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, false)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 0
	state.Players[0].CurrentActionID = 1

	Resolve(&state, cfgs, lib)

	if state.Players[1].VelX != 0 || state.Players[1].VelY != 0 {
		t.Error("a dead defender should not receive knockback")
	}
}

func TestResolveDisjointHitboxStillDamagesDefender(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, true)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 100
	state.Players[0].CurrentActionID = 1

	Resolve(&state, cfgs, lib)

	if state.Players[1].Health != 90 {
		t.Error("disjoint only exempts a hitbox from trading with another attack, not from hitting a defender's hurtbox")
	}
}

func TestResolveOutOfRangeNoHit(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, false)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 100
	state.Players[0].CurrentActionID = 1
	state.Players[0].PosX, state.Players[0].PosY = 0, 0
	state.Players[1].PosX, state.Players[1].PosY = 100000, 0

	Resolve(&state, cfgs, lib)

	if state.Players[1].Health != 100 {
		t.Error("a far-away defender should take no damage")
	}
}

func TestResolveFrameOutsideWindowNoHit(t *testing.T) {
	cfgs := testConfigs(t)
	lib := libraryWithHit(5, 10, 1000, 0, false)

	var state simstate.GameState
	state.Players[0].Health = 100
	state.Players[1].Health = 100
	state.Players[0].CurrentActionID = 1
	state.Players[0].ActionFrameIndex = 50 // outside the [0,9] window

	Resolve(&state, cfgs, lib)

	if state.Players[1].Health != 100 {
		t.Error("a hitbox event outside its active window should not connect")
	}
}

func TestResolveWeightAffectsKnockbackMagnitude(t *testing.T) {
	lib := libraryWithHit(5, 10, 1000, 0, false)

	light, err := character.GetDefault(5) // bow: Weight 65
	if err != nil {
		t.Fatal(err)
	}
	heavy, err := character.GetDefault(8) // hammer: Weight 135
	if err != nil {
		t.Fatal(err)
	}

	run := func(defenderCfg character.Config) int32 {
		var cfgs [simstate.MaxPlayers]character.Config
		attacker, _ := character.GetDefault(0)
		cfgs[0] = attacker
		cfgs[1] = defenderCfg

		var state simstate.GameState
		state.Players[0].Health = 100
		state.Players[1].Health = 100
		state.Players[0].CurrentActionID = 1
		state.Players[1].PosY = 0
		Resolve(&state, cfgs, lib)
		return state.Players[1].VelY
	}

	lightKnockback := run(light)
	heavyKnockback := run(heavy)

	if lightKnockback <= heavyKnockback {
		t.Errorf("lighter defender should receive more knockback: light=%d heavy=%d", lightKnockback, heavyKnockback)
	}
}
