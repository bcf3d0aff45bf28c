package sim

import (
	"testing"

	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/inputframe"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
)

func testSetup(t *testing.T) ([simstate.MaxPlayers]character.Config, *action.Library, stage.MapData) {
	t.Helper()
	var cfgs [simstate.MaxPlayers]character.Config
	for i := range cfgs {
		cfg, err := character.GetDefault(0)
		if err != nil {
			t.Fatal(err)
		}
		cfgs[i] = cfg
	}
	lib := action.NewDefaultLibrary()
	return cfgs, lib, stage.Default()
}

func newGroundedState() simstate.GameState {
	s := simstate.NewGameState()
	s.Players[0].Health = 100
	s.Players[1].Health = 100
	s.Players[0].Facing = simstate.FacingRight
	s.Players[1].Facing = simstate.FacingLeft
	s.Players[0].Grounded = 1
	s.Players[1].Grounded = 1
	s.Players[0].PosY = 1
	s.Players[1].PosY = 1
	s.Players[1].PosX = 2000
	return s
}

func TestStepAdvancesFrameIndex(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()

	err := Step(&s, inputframe.InputFrame{}, m, cfgs, lib, Validation{HashPeriod: 1})
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if s.FrameIndex != 1 {
		t.Errorf("FrameIndex = %d, want 1", s.FrameIndex)
	}
}

func TestStepDeadPlayerExcludedFromInput(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()
	s.Players[0].Health = 0
	s.Players[0].VelX = 0

	in := inputframe.InputFrame{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitRight, 0}}
	if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}

	if s.Players[0].VelX != 0 {
		t.Error("a dead player should not respond to movement input")
	}
}

func TestStepSelectsActionOnAttackInput(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()

	in := inputframe.InputFrame{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitAttack, 0}}
	if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}

	if s.Players[0].CurrentActionID == 0 {
		t.Fatal("expected player 0 to start an action on ATTACK input")
	}
	if s.Players[0].ActionFrameIndex != 1 {
		t.Errorf("ActionFrameIndex = %d, want 1 after one tick of progression", s.Players[0].ActionFrameIndex)
	}
}

func TestStepHitstunBlocksNewAction(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()
	s.Players[0].HitstunRemaining = 5

	in := inputframe.InputFrame{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitAttack, 0}}
	if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}

	if s.Players[0].CurrentActionID != 0 {
		t.Error("a player in hitstun must not be able to start a new action")
	}
	if s.Players[0].HitstunRemaining != 4 {
		t.Errorf("HitstunRemaining = %d, want 4 after one tick's decrement", s.Players[0].HitstunRemaining)
	}
}

func TestStepNonCancelableActionBlocksReselection(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()

	def, _, ok := lib.Select(cfgs[0].ArchetypeID, 1<<inputframe.BitAttack)
	if !ok {
		t.Fatal("expected a bound attack action for archetype 0")
	}
	s.Players[0].CurrentActionID = def.ID
	s.Players[0].ActionFrameIndex = 0 // frame 0 of buildMeleeAttack is not cancelable

	in := inputframe.InputFrame{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitDefend, 0}}
	if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}

	if s.Players[0].CurrentActionID != def.ID {
		t.Error("a non-cancelable frame must not allow the action to be replaced")
	}
}

func TestStepDesyncDetected(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()
	s.LastValidatedFrame = 0 // pretend frame 0 already validated

	v := Validation{HashPeriod: 1, HasExpected: true, Expected: 0xdeadbeef}
	err := Step(&s, inputframe.InputFrame{}, m, cfgs, lib, v)
	if err == nil {
		t.Fatal("expected a desync error from a deliberately wrong expected hash")
	}
}

func TestStepNoDesyncWhenHashesAgree(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()

	// First tick establishes the real hash with no prior validation.
	if err := Step(&s, inputframe.InputFrame{}, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}
	expected := s.LastValidatedHash

	// A second, freshly built but identically-stepped state should
	// reach the same hash.
	s2 := newGroundedState()
	if err := Step(&s2, inputframe.InputFrame{}, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
		t.Fatal(err)
	}
	if s2.LastValidatedHash != expected {
		t.Fatal("identical initial states and inputs must produce identical hashes")
	}
}

func TestStepDeterministicAcrossRuns(t *testing.T) {
	cfgs, lib, m := testSetup(t)

	run := func() uint32 {
		s := newGroundedState()
		inputs := []inputframe.InputFrame{
			{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitRight, 0}},
			{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitAttack, 0}},
			{},
			{},
			{InputBits: [inputframe.MaxPlayers]uint16{0, 1 << inputframe.BitDefend}},
		}
		for _, in := range inputs {
			if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
				t.Fatal(err)
			}
		}
		return s.LastValidatedHash
	}

	if run() != run() {
		t.Fatal("identical input sequences must produce identical final hashes")
	}
}

// TestStepStopsAtRightWall is the regression case for §3's "left/right
// walls" data member and §8 S2 ("both players reach the opposing
// wall"): a player holding RIGHT for far longer than it takes to cross
// the arena must stop at stage.Default's RightWallX, not tunnel
// through it.
func TestStepStopsAtRightWall(t *testing.T) {
	cfgs, lib, m := testSetup(t)
	s := newGroundedState()

	in := inputframe.InputFrame{InputBits: [inputframe.MaxPlayers]uint16{1 << inputframe.BitRight, 0}}
	for i := 0; i < 120; i++ {
		if err := Step(&s, in, m, cfgs, lib, Validation{HashPeriod: 1}); err != nil {
			t.Fatal(err)
		}
	}

	halfWidth := cfgs[0].HitboxWidth / 2
	if max := m.RightWallX - halfWidth; s.Players[0].PosX > max {
		t.Errorf("PosX = %d, want <= %d (stopped at the right wall)", s.Players[0].PosX, max)
	}
	if s.Players[0].VelX != 0 {
		t.Errorf("VelX = %d, want 0 once resting against the right wall", s.Players[0].VelX)
	}
}
