// Command harness is the headless, deterministic test driver: it
// seeds a match, steps it for a fixed number of ticks, and exits
// non-zero with a single-line REASON=<code> if any invariant breaks.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/harness"
	"rollback-core/internal/sim"
	"rollback-core/internal/simerr"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
	"rollback-core/internal/statehash"
)

func main() {
	seed := flag.Uint64("seed", 1, "deterministic input generator seed")
	frames := flag.Int("frames", 600, "number of ticks to simulate")
	archP1 := flag.Int64("archetype-p1", 0, "player 0 archetype id [0,9]")
	archP2 := flag.Int64("archetype-p2", 1, "player 1 archetype id [0,9]")
	hashPeriod := flag.Int64("hash-period", 1, "validation hash period: 1 (strict) or 10 (production)")
	flag.Parse()

	if *hashPeriod != 1 && *hashPeriod != 10 {
		fail("INVALID_INPUT", fmt.Errorf("--hash-period must be 1 or 10, got %d", *hashPeriod))
	}

	cfgP1, err := character.GetDefault(int32(*archP1))
	if err != nil {
		fail("UNKNOWN_ARCHETYPE", err)
	}
	cfgP2, err := character.GetDefault(int32(*archP2))
	if err != nil {
		fail("UNKNOWN_ARCHETYPE", err)
	}

	configs := [simstate.MaxPlayers]character.Config{cfgP1, cfgP2}
	lib := action.NewDefaultLibrary()
	m := stage.Default()

	state := simstate.NewGameState()
	state.Players[0].Health = cfgP1.BaseHealth
	state.Players[1].Health = cfgP2.BaseHealth
	state.Players[0].Facing = simstate.FacingRight
	state.Players[1].Facing = simstate.FacingLeft
	state.Players[0].Grounded = 1
	state.Players[1].Grounded = 1
	state.Players[1].PosX = 6 * 1000

	inputs := harness.GenerateSequence(*seed, *frames)

	log.Printf("🎮 harness: seed=%d frames=%d archP1=%d archP2=%d hashPeriod=%d",
		*seed, *frames, *archP1, *archP2, *hashPeriod)

	for _, in := range inputs {
		v := sim.Validation{HashPeriod: int32(*hashPeriod)}
		if err := sim.Step(&state, in, m, configs, lib, v); err != nil {
			var desync *simerr.DesyncError
			switch {
			case errors.As(err, &desync):
				log.Printf("❌ desync at frame %d: expected=%#08x actual=%#08x", desync.Frame, desync.Expected, desync.Actual)
				fail("DESYNC", err)
			case errors.Is(err, simerr.ErrOutOfWindow), errors.Is(err, simerr.ErrRollbackWindowExceeded):
				fail("OUT_OF_WINDOW", err)
			case errors.Is(err, simerr.ErrUnknownArchetype), errors.Is(err, simerr.ErrUnknownAction):
				fail("UNKNOWN_ARCHETYPE", err)
			default:
				fail("INVALID_INPUT", err)
			}
		}
	}

	finalHash := statehash.Compute(&state)
	log.Printf("✅ completed %d ticks, frameIndex=%d, finalHash=%#08x", *frames, state.FrameIndex, finalHash)
	os.Exit(0)
}

func fail(reason string, err error) {
	log.Printf("❌ %v", err)
	fmt.Printf("REASON=%s\n", reason)
	os.Exit(1)
}
