// Package netplay is the demo out-of-core transport: an HTTP +
// WebSocket relay that exercises the "network transport" collaborator
// named only by interface in the deterministic core (spec §1). It
// drives a rollback.Controller from two peer connections; it is never
// imported by the deterministic tick itself.
//
// Grounded in the teacher's internal/api package (router.go,
// websocket.go, observability.go): same chi + cors + gorilla/websocket
// + Prometheus shape, serving rollback netcode instead of a render
// feed.
package netplay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality, mirroring the teacher's
// observability.go: no per-player or per-IP labels.
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "rollback_netplay_tick_duration_seconds",
		Help:    "Time spent in one relay driver tick (predict + optional resimulation).",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.002, 0.005, 0.01, 0.016},
	})

	resimulationTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollback_netplay_resimulation_total",
		Help: "Number of times a remote confirmation disagreed with the held-last prediction and triggered resimulation.",
	})

	desyncTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rollback_netplay_desync_total",
		Help: "Number of DesyncDetected errors raised by a validated tick.",
	})

	currentFrameGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rollback_netplay_current_frame",
		Help: "The rollback controller's current (most recently predicted or confirmed) frame.",
	})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rollback_netplay_ws_connections_active",
		Help: "Currently connected peer WebSocket sessions.",
	})

	connectionRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollback_netplay_connection_rejected_total",
		Help: "Connections rejected before upgrade.",
	}, []string{"reason"}) // bounded: "origin", "rate_limit", "bad_player", "full"
)

func recordTick(d time.Duration) {
	tickDuration.Observe(d.Seconds())
}

func recordResimulation() {
	resimulationTotal.Inc()
}

func recordDesync() {
	desyncTotal.Inc()
}

func setCurrentFrame(frame int32) {
	currentFrameGauge.Set(float64(frame))
}

func setWSConnections(n int) {
	wsConnectionsActive.Set(float64(n))
}

func recordRejected(reason string) {
	connectionRejectedTotal.WithLabelValues(reason).Inc()
}
