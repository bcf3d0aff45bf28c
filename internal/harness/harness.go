// Package harness implements the test-harness contract: a seeded,
// reproducible input generator and an A/B hash comparison helper, used
// by the headless CLI driver to exercise determinism without any
// network transport.
//
// Grounded in the teacher's internal/game/stress_test.go synthetic
// load generator (a fixed seed driving repeatable scripted player
// actions for benchmarking), reworked from *testing.B-only usage into
// a reusable generator any caller can seed explicitly — never reaching
// into math/rand's global state, so two generators built from the same
// seed always produce the same sequence regardless of what else ran
// before them in the process.
package harness

import "rollback-core/internal/inputframe"

// Generator produces a deterministic stream of pseudo-random 64-bit
// words from an explicit seed, using xorshift64*. It carries no
// reference to any global generator state.
type Generator struct {
	state uint64
}

// NewGenerator seeds a generator. A zero seed is nudged to a fixed
// nonzero value, since xorshift64* never leaves the all-zero state.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &Generator{state: seed}
}

// Next advances the generator and returns the next pseudo-random word.
func (g *Generator) Next() uint64 {
	x := g.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	g.state = x
	return x * 0x2545F4914F6CDD1D
}

// buttonBits are the ordinary movement/attack buttons a generated
// input may hold; DEFEND and reserved bits are left out of casual
// generation and only appear when a scenario asks for them explicitly.
var buttonBits = []uint16{
	1 << inputframe.BitLeft,
	1 << inputframe.BitRight,
	1 << inputframe.BitJump,
	1 << inputframe.BitAttack,
	1 << inputframe.BitSpecial,
}

// NextInputFrame produces one tick's InputFrame for both players: each
// player independently has roughly a 1-in-3 chance of holding one
// button this tick, else holds nothing.
func (g *Generator) NextInputFrame(tick int32) inputframe.InputFrame {
	var f inputframe.InputFrame
	f.TickIndex = tick
	for p := 0; p < inputframe.MaxPlayers; p++ {
		r := g.Next()
		if r%3 != 0 {
			continue
		}
		f.InputBits[p] = buttonBits[(r/3)%uint64(len(buttonBits))]
	}
	return f
}

// GenerateSequence produces frames ticks of input starting at tick 0.
func GenerateSequence(seed uint64, frames int) []inputframe.InputFrame {
	g := NewGenerator(seed)
	out := make([]inputframe.InputFrame, frames)
	for i := 0; i < frames; i++ {
		out[i] = g.NextInputFrame(int32(i))
	}
	return out
}

// CompareRuns compares two hash sequences produced by independent runs
// over the same input sequence. It returns the index of the first
// divergence and whether the two runs agree everywhere; sequences of
// different lengths diverge at the shorter one's length.
// firstDivergentFrame is -1 when ok is true.
func CompareRuns(a, b []uint32) (firstDivergentFrame int, ok bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i, false
		}
	}
	if len(a) != len(b) {
		return n, false
	}
	return -1, true
}
