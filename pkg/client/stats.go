package client

import "lanblackjack/pkg/wire"

// SessionStats tallies round results from the player's perspective
type SessionStats struct {
	Wins   int
	Losses int
	Ties   int
}

func (s *SessionStats) record(result wire.Result) {
	switch result {
	case wire.ResultWin:
		s.Wins++
	case wire.ResultLoss:
		s.Losses++
	case wire.ResultTie:
		s.Ties++
	}
}

// Merge adds another tally into this one
func (s *SessionStats) Merge(other SessionStats) {
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
}

// Rounds returns the total number of completed rounds
func (s SessionStats) Rounds() int {
	return s.Wins + s.Losses + s.Ties
}

// WinRate returns the percentage of rounds won, or 0 if no rounds were played
func (s SessionStats) WinRate() float64 {
	rounds := s.Rounds()
	if rounds == 0 {
		return 0
	}

	return float64(s.Wins) / float64(rounds) * 100
}
