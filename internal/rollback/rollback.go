// Package rollback implements the fixed-size ring-buffered history
// that lets a client predict ahead of the network, then resimulate
// from the last good snapshot when a remote confirmation disagrees
// with what was predicted.
//
// Grounded in the teacher's internal/game/event_log.go fixed-capacity
// ring (index-mod-N circular history with pre-allocated backing array)
// and engine.go's single-threaded tick driver, reworked from an
// append-only log into two parallel state/input rings with predict,
// confirm, and resimulate operations layered on top of sim.Step.
package rollback

import (
	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/inputframe"
	"rollback-core/internal/sim"
	"rollback-core/internal/simerr"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
	"rollback-core/internal/statehash"
)

// MaxRollbackFrames is the ring's horizon: two seconds of history at
// 60 Hz.
const MaxRollbackFrames = 120

// Controller owns the pre-allocated state and input rings, the
// immutable simulation references they are stepped against, and the
// currently confirmed/predicted frame cursor.
type Controller struct {
	stateRing [MaxRollbackFrames]simstate.GameState
	inputRing [MaxRollbackFrames]inputframe.InputFrame

	initial      simstate.GameState
	currentFrame int32 // -1 before the first predicted tick

	m          stage.MapData
	configs    [simstate.MaxPlayers]character.Config
	lib        *action.Library
	hashPeriod int32

	localPlayerIndex  int32
	remotePlayerIndex int32
}

// NewController builds a controller seeded with initial as the state
// at the implicit frame -1. localPlayerIndex selects which of the two
// player slots this host drives directly; the other is the remote.
func NewController(
	initial simstate.GameState,
	m stage.MapData,
	configs [simstate.MaxPlayers]character.Config,
	lib *action.Library,
	hashPeriod int32,
	localPlayerIndex int32,
) *Controller {
	return &Controller{
		initial:           initial,
		currentFrame:      -1,
		m:                 m,
		configs:           configs,
		lib:               lib,
		hashPeriod:        hashPeriod,
		localPlayerIndex:  localPlayerIndex,
		remotePlayerIndex: 1 - localPlayerIndex,
	}
}

func (c *Controller) slot(frame int32) int32 {
	m := int32(MaxRollbackFrames)
	return ((frame % m) + m) % m
}

func (c *Controller) inWindow(frame int32) bool {
	return frame <= c.currentFrame && frame > c.currentFrame-MaxRollbackFrames
}

// stateAt returns a value copy of the snapshot for frame, or the
// bootstrap state for frame == -1.
func (c *Controller) stateAt(frame int32) (simstate.GameState, error) {
	if frame == -1 {
		return c.initial, nil
	}
	if !c.inWindow(frame) {
		return simstate.GameState{}, simerr.ErrOutOfWindow
	}
	return c.stateRing[c.slot(frame)], nil
}

func (c *Controller) inputAt(frame int32) inputframe.InputFrame {
	if frame < 0 {
		return inputframe.InputFrame{}
	}
	if !c.inWindow(frame) {
		return inputframe.InputFrame{}
	}
	return c.inputRing[c.slot(frame)]
}

// buildPredicted applies the hold-last policy: the local player's bits
// come from localBits; every other player's bits are copied from the
// most recent known input (frame-1) since the remote arrival for this
// frame has not yet been confirmed.
func (c *Controller) buildPredicted(frame int32, localBits uint16) inputframe.InputFrame {
	prev := c.inputAt(frame - 1)
	in := inputframe.InputFrame{TickIndex: frame}
	for i := int32(0); i < simstate.MaxPlayers; i++ {
		if i == c.localPlayerIndex {
			in.InputBits[i] = localBits
		} else {
			in.InputBits[i] = prev.InputBits[i]
		}
	}
	return in
}

// SaveState deep-copies the controller's snapshot for frame into the
// ring, overwriting whatever was previously recorded there.
func (c *Controller) SaveState(frame int32, state *simstate.GameState) error {
	if !c.inWindow(frame) {
		return simerr.ErrOutOfWindow
	}
	state.DeepCopy(&c.stateRing[c.slot(frame)])
	return nil
}

// Predict stores localBits for frame (filling remote players' bits via
// hold-last), steps from frame-1's snapshot, and advances
// currentFrame to frame.
func (c *Controller) Predict(frame int32, localBits uint16) error {
	prevState, err := c.stateAt(frame - 1)
	if err != nil {
		return err
	}

	in := c.buildPredicted(frame, localBits)

	working := prevState
	if err := sim.Step(&working, in, c.m, c.configs, c.lib, sim.Validation{HashPeriod: c.hashPeriod}); err != nil {
		return err
	}

	slot := c.slot(frame)
	c.stateRing[slot] = working
	c.inputRing[slot] = in
	c.currentFrame = frame

	return nil
}

// ConfirmRemoteInput compares remoteBits against what was predicted
// for frame. An exact match requires no work. A mismatch restores the
// frame-1 snapshot and resimulates every tick from frame through
// currentFrame, in ascending order. The corrected remote bits become
// the new held-last value from frame onward: every resimulated tick's
// remote slot is overwritten with remoteBits, not just frame's, so the
// resim matches what a fresh hold-last run would have produced once
// the correct input was known. Local bits are never touched, since
// they were always authoritative.
func (c *Controller) ConfirmRemoteInput(frame int32, remoteBits uint16) error {
	if !c.inWindow(frame) {
		return simerr.ErrRollbackWindowExceeded
	}

	stored := c.inputRing[c.slot(frame)]
	if stored.InputBits[c.remotePlayerIndex] == remoteBits {
		return nil
	}

	working, err := c.stateAt(frame - 1)
	if err != nil {
		return err
	}

	for f := frame; f <= c.currentFrame; f++ {
		slot := c.slot(f)
		in := c.inputRing[slot]
		in.InputBits[c.remotePlayerIndex] = remoteBits

		if err := sim.Step(&working, in, c.m, c.configs, c.lib, sim.Validation{HashPeriod: c.hashPeriod}); err != nil {
			return err
		}

		c.stateRing[slot] = working
		c.inputRing[slot] = in
	}

	return nil
}

// GetState returns a read-only value copy of the snapshot at frame.
func (c *Controller) GetState(frame int32) (simstate.GameState, error) {
	return c.stateAt(frame)
}

// SaveInputs records confirmed local input for frame directly, without
// running a tick; used by callers (e.g. the test harness) that drive
// prediction and confirmation as separate steps.
func (c *Controller) SaveInputs(frame int32, in inputframe.InputFrame) error {
	if !c.inWindow(frame) {
		return simerr.ErrOutOfWindow
	}
	c.inputRing[c.slot(frame)] = in
	return nil
}

// GetHash returns the state hash recorded for frame.
func (c *Controller) GetHash(frame int32) (uint32, error) {
	s, err := c.stateAt(frame)
	if err != nil {
		return 0, err
	}
	return statehash.Compute(&s), nil
}

// CurrentFrame reports the most recently predicted or confirmed tick.
func (c *Controller) CurrentFrame() int32 {
	return c.currentFrame
}
