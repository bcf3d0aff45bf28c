package netplay

import (
	"testing"
	"time"

	"rollback-core/internal/inputframe"
)

func TestNewSessionRejectsUnknownArchetype(t *testing.T) {
	if _, err := NewSession(60, 10, 42, 0); err == nil {
		t.Fatal("expected an error for an out-of-range archetype id")
	}
}

func TestSessionTickAdvancesFrameAndAppliesLocalInput(t *testing.T) {
	s, err := NewSession(60, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	s.inputs[localSeat].TryPush(1 << inputframe.BitRight)
	s.tick()

	if got := s.ctrl.CurrentFrame(); got != 0 {
		t.Errorf("CurrentFrame() = %d, want 0", got)
	}

	state, err := s.ctrl.GetState(0)
	if err != nil {
		t.Fatal(err)
	}
	if state.Players[0].VelX == 0 {
		t.Error("local player's walk input should have produced non-zero VelX")
	}
}

func TestSessionTickResimulatesOnDivergentRemoteInput(t *testing.T) {
	s, err := NewSession(60, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	// Tick 0: no remote input arrives yet, held-last is zero.
	s.tick()
	// Tick 1: remote input arrives disagreeing with the held-last guess.
	s.inputs[remoteSeat].TryPush(1 << inputframe.BitLeft)
	s.tick()

	if got := s.ctrl.CurrentFrame(); got != 1 {
		t.Errorf("CurrentFrame() = %d, want 1", got)
	}
}

func TestSessionBroadcastIsNonBlockingWithNoPeers(t *testing.T) {
	s, err := NewSession(60, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		s.tick()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("tick() blocked with no attached peers")
	}
}

func TestSessionStopClosesConnections(t *testing.T) {
	s, err := NewSession(60, 1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if s.connCount() != 0 {
		t.Errorf("connCount() = %d, want 0 after Stop", s.connCount())
	}
}
