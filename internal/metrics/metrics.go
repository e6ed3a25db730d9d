// Package metrics exposes Prometheus collectors for hosted game sessions.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomz197/spacegame/internal/loop"
)

const namespace = "spacegame"

// Metrics groups the session collectors. The zero value is not usable;
// create one with New.
type Metrics struct {
	activeSessions prometheus.Gauge
	sessions       prometheus.Counter
	turns          prometheus.Counter
	levelsCleared  prometheus.Counter
	games          *prometheus.CounterVec
	gameDuration   prometheus.Histogram
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of sessions currently connected",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Total number of sessions started",
		}),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Total number of turns played",
		}),
		levelsCleared: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_cleared_total",
			Help:      "Total number of levels cleared",
		}),
		games: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_total",
			Help:      "Finished games by outcome",
		}, []string{"outcome"}),
		gameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_duration_seconds",
			Help:      "Wall-clock duration of finished games",
			Buckets:   prometheus.ExponentialBuckets(10, 2, 8),
		}),
	}
}

// Register adds every collector to r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.activeSessions, m.sessions, m.turns, m.levelsCleared, m.games, m.gameDuration,
	} {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler serves the metrics gathered from g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// SessionStarted records a new connection.
func (m *Metrics) SessionStarted() {
	m.sessions.Inc()
	m.activeSessions.Inc()
}

// SessionEnded records a closed connection.
func (m *Metrics) SessionEnded() {
	m.activeSessions.Dec()
}

// TurnPlayed records one AdvanceTurn.
func (m *Metrics) TurnPlayed() {
	m.turns.Inc()
}

// LevelCleared records a level transition.
func (m *Metrics) LevelCleared() {
	m.levelsCleared.Inc()
}

// GameFinished records a terminal outcome and how long the game lasted.
func (m *Metrics) GameFinished(o loop.Outcome, d time.Duration) {
	m.games.WithLabelValues(o.String()).Inc()
	m.gameDuration.Observe(d.Seconds())
}
