package server

import (
	"sync/atomic"

	"lanblackjack/pkg/wire"
)

// Stats tracks session and round counters across all connections.
// All access is atomic; this is the only state connections share.
type Stats struct {
	activeSessions int64
	totalSessions  int64
	roundsPlayed   int64
	playerWins     int64
	playerLosses   int64
	ties           int64
}

// StatsSnapshot is a point-in-time copy of the counters.
// Wins and losses are from the players' perspective.
type StatsSnapshot struct {
	ActiveSessions int64 `json:"activeSessions"`
	TotalSessions  int64 `json:"totalSessions"`
	RoundsPlayed   int64 `json:"roundsPlayed"`
	PlayerWins     int64 `json:"playerWins"`
	PlayerLosses   int64 `json:"playerLosses"`
	Ties           int64 `json:"ties"`
}

func (s *Stats) sessionStarted() {
	atomic.AddInt64(&s.activeSessions, 1)
	atomic.AddInt64(&s.totalSessions, 1)
}

func (s *Stats) sessionEnded() {
	atomic.AddInt64(&s.activeSessions, -1)
}

func (s *Stats) roundPlayed(result wire.Result) {
	atomic.AddInt64(&s.roundsPlayed, 1)

	switch result {
	case wire.ResultWin:
		atomic.AddInt64(&s.playerWins, 1)
	case wire.ResultLoss:
		atomic.AddInt64(&s.playerLosses, 1)
	case wire.ResultTie:
		atomic.AddInt64(&s.ties, 1)
	}
}

// Snapshot returns a consistent-enough copy of the counters for reporting
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		ActiveSessions: atomic.LoadInt64(&s.activeSessions),
		TotalSessions:  atomic.LoadInt64(&s.totalSessions),
		RoundsPlayed:   atomic.LoadInt64(&s.roundsPlayed),
		PlayerWins:     atomic.LoadInt64(&s.playerWins),
		PlayerLosses:   atomic.LoadInt64(&s.playerLosses),
		Ties:           atomic.LoadInt64(&s.ties),
	}
}
