package netplay

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rollback-core/internal/action"
	"rollback-core/internal/character"
	"rollback-core/internal/inputframe"
	"rollback-core/internal/queue"
	"rollback-core/internal/rollback"
	"rollback-core/internal/simerr"
	"rollback-core/internal/simstate"
	"rollback-core/internal/stage"
)

// localSeat is the player index this relay treats as locally
// authoritative for the rollback.Controller's hold-last prediction
// (§4.K). Both seats are, in fact, remote network peers from the
// relay's point of view; the controller's local/remote distinction is
// about which input is trusted immediately versus held-last until
// confirmed, not about physical locality. Seat 0 predicts immediately
// on arrival; seat 1's input is confirmed (and resimulated if it
// disagrees with the held-last guess) once it arrives.
const localSeat = 0
const remoteSeat = 1

// Session drives one two-peer match: a rollback.Controller stepped by
// a fixed-rate ticker, fed by per-seat SPSC queues that the WebSocket
// read loops for each peer push into. Grounded in the teacher's
// internal/game/engine.go tick-goroutine-plus-mutex shape and
// event_log.go's lock-free SPSC handoff, reworked around
// rollback-core's Predict/ConfirmRemoteInput protocol instead of a
// single authoritative Update.
type Session struct {
	ctrl *rollback.Controller

	inputs  [2]*queue.SPSC[uint16]
	lastBit [2]uint16

	connMu sync.Mutex
	conns  [2]*websocket.Conn

	tickInterval time.Duration
	stopCh       chan struct{}
	stopOnce     sync.Once
}

// NewSession builds a session with a fresh match: both players spawn
// via stage.Default and character.GetDefault(archP0/archP1), exactly
// as cmd/harness seeds a match.
func NewSession(tickRate int, hashPeriod int32, archP0, archP1 int32) (*Session, error) {
	cfgP0, err := character.GetDefault(archP0)
	if err != nil {
		return nil, err
	}
	cfgP1, err := character.GetDefault(archP1)
	if err != nil {
		return nil, err
	}

	state := simstate.NewGameState()
	state.Players[0].Health = cfgP0.BaseHealth
	state.Players[1].Health = cfgP1.BaseHealth
	state.Players[0].Facing = simstate.FacingRight
	state.Players[1].Facing = simstate.FacingLeft
	state.Players[0].Grounded = 1
	state.Players[1].Grounded = 1
	state.Players[1].PosX = 6 * 1000

	configs := [simstate.MaxPlayers]character.Config{cfgP0, cfgP1}
	lib := action.NewDefaultLibrary()
	m := stage.Default()

	ctrl := rollback.NewController(state, m, configs, lib, hashPeriod, localSeat)

	if tickRate <= 0 {
		tickRate = 60
	}

	return &Session{
		ctrl:         ctrl,
		inputs:       [2]*queue.SPSC[uint16]{queue.New[uint16](32), queue.New[uint16](32)},
		tickInterval: time.Second / time.Duration(tickRate),
		stopCh:       make(chan struct{}),
	}, nil
}

// Attach registers conn as the WebSocket connection for seat and
// starts its read loop. seat must be 0 or 1.
func (s *Session) Attach(seat int, conn *websocket.Conn) {
	s.connMu.Lock()
	if old := s.conns[seat]; old != nil {
		old.Close()
	}
	s.conns[seat] = conn
	s.connMu.Unlock()

	go s.readLoop(seat, conn)
}

func (s *Session) readLoop(seat int, conn *websocket.Conn) {
	defer func() {
		s.connMu.Lock()
		if s.conns[seat] == conn {
			s.conns[seat] = nil
		}
		s.connMu.Unlock()
		conn.Close()
		setWSConnections(s.connCount())
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		in, err := inputframe.Deserialize(msg)
		if err != nil {
			log.Printf("netplay: seat %d sent malformed input frame: %v", seat, err)
			continue
		}
		s.inputs[seat].TryPush(in.InputBits[seat])
	}
}

func (s *Session) connCount() int {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	n := 0
	for _, c := range s.conns {
		if c != nil {
			n++
		}
	}
	return n
}

// Run drives the fixed-rate tick loop until Stop is called. It never
// blocks on network I/O: each tick pops at most one queued input per
// seat (oldest first) non-blockingly, falling back to the previous
// tick's bits if nothing new has arrived.
func (s *Session) Run() {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// Stop ends the driver loop and closes any attached connections.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.connMu.Lock()
	for i, c := range s.conns {
		if c != nil {
			c.Close()
			s.conns[i] = nil
		}
	}
	s.connMu.Unlock()
}

func (s *Session) tick() {
	start := time.Now()
	defer func() { recordTick(time.Since(start)) }()

	frame := s.ctrl.CurrentFrame() + 1

	if bits, ok := s.inputs[localSeat].TryPop(); ok {
		s.lastBit[localSeat] = bits
	}
	if err := s.ctrl.Predict(frame, s.lastBit[localSeat]); err != nil {
		s.handleErr(frame, err)
		return
	}

	if bits, ok := s.inputs[remoteSeat].TryPop(); ok {
		changed := bits != s.lastBit[remoteSeat]
		s.lastBit[remoteSeat] = bits
		if changed {
			recordResimulation()
		}
		if err := s.ctrl.ConfirmRemoteInput(frame, bits); err != nil {
			s.handleErr(frame, err)
			return
		}
	}

	setCurrentFrame(s.ctrl.CurrentFrame())

	confirmed := inputframe.InputFrame{
		TickIndex: frame,
		InputBits: [2]uint16{s.lastBit[0], s.lastBit[1]},
	}
	s.broadcast(confirmed)
}

func (s *Session) handleErr(frame int32, err error) {
	var desync *simerr.DesyncError
	if errors.As(err, &desync) {
		recordDesync()
		log.Printf("netplay: desync at frame %d: expected=%#08x actual=%#08x", desync.Frame, desync.Expected, desync.Actual)
		return
	}
	if errors.Is(err, simerr.ErrOutOfWindow) || errors.Is(err, simerr.ErrRollbackWindowExceeded) {
		log.Printf("netplay: frame %d outside rollback window: %v", frame, err)
		return
	}
	log.Printf("netplay: tick error at frame %d: %v", frame, err)
}

func (s *Session) broadcast(in inputframe.InputFrame) {
	wire := in.Serialize()

	s.connMu.Lock()
	defer s.connMu.Unlock()
	for _, c := range s.conns {
		if c == nil {
			continue
		}
		_ = c.WriteMessage(websocket.BinaryMessage, wire[:])
	}
}
