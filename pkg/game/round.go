// Package game implements the authoritative blackjack round state machine
// run by the server. The client runs a mirrored, reactive version driven
// entirely by the card events it receives (see pkg/client).
package game

import (
	"errors"
	"fmt"
	"io"

	"lanblackjack/pkg/deck"
	"lanblackjack/pkg/wire"

	"github.com/sirupsen/logrus"
)

// State is the state of the current round
type State string

// State constants
const (
	// StateDealInitial is before any cards have been dealt
	StateDealInitial State = "deal-initial"

	// StatePlayerTurn means the player is deciding to hit or stand
	StatePlayerTurn State = "player-turn"

	// StateDealerReveal means the dealer is about to show the hole card
	StateDealerReveal State = "dealer-reveal"

	// StateDealerTurn means the dealer draws until reaching 17
	StateDealerTurn State = "dealer-turn"

	// StateCompare means both hands are valid and totals decide the result
	StateCompare State = "compare"

	// StateResolved means the round is over
	StateResolved State = "resolved"
)

// dealerStandsAt is the total at which the dealer stops drawing
const dealerStandsAt = 17

// ErrBadDecision is an error when the client sends a decision other than
// hit or stand. It is fatal for the session.
var ErrBadDecision = errors.New("game: unexpected player decision")

// Round is a single authoritative blackjack round. Each round owns a fresh,
// already-shuffled deck and exchanges card events and decisions over one
// connection.
type Round struct {
	State  State
	deck   *deck.Deck
	player deck.Hand
	dealer deck.Hand
	log    logrus.FieldLogger
}

// NewRound returns a new round drawing from the provided deck.
// The deck must be freshly built and shuffled; decks are never reused.
func NewRound(log logrus.FieldLogger, d *deck.Deck) *Round {
	return &Round{
		State: StateDealInitial,
		deck:  d,
		log:   log,
	}
}

// PlayerTotal returns the player's running total
func (r *Round) PlayerTotal() int {
	return r.player.Points()
}

// DealerTotal returns the dealer's running total
func (r *Round) DealerTotal() int {
	return r.dealer.Points()
}

// Play runs the round to completion over rw and returns the final result
// from the player's perspective. Any returned error is fatal for the
// session; no partial round is ever resumed.
func (r *Round) Play(rw io.ReadWriter) (wire.Result, error) {
	if r.State != StateDealInitial {
		return 0, fmt.Errorf("cannot play a round from state: %s", r.State)
	}

	if err := r.dealInitial(rw); err != nil {
		return 0, err
	}

	result, err := r.playerTurn(rw)
	if err != nil {
		return 0, err
	}

	if result.Terminal() {
		return result, nil
	}

	if err := r.dealerReveal(rw); err != nil {
		return 0, err
	}

	result, err = r.dealerTurn(rw)
	if err != nil {
		return 0, err
	}

	if result.Terminal() {
		return result, nil
	}

	return r.compare(rw)
}

// dealInitial draws two player cards and two dealer cards, then sends the
// player's cards and the dealer's up-card. The dealer's second card stays
// hidden until the reveal.
func (r *Round) dealInitial(w io.Writer) error {
	for i := 0; i < 2; i++ {
		card, err := r.deck.Draw()
		if err != nil {
			return err
		}

		r.player.AddCard(card)
	}

	for i := 0; i < 2; i++ {
		card, err := r.deck.Draw()
		if err != nil {
			return err
		}

		r.dealer.AddCard(card)
	}

	for _, card := range r.player {
		r.log.WithField("card", card.String()).Debug("dealt to player")
		if err := r.sendCard(w, card, wire.ResultNotOver); err != nil {
			return err
		}
	}

	upCard := r.dealer[0]
	r.log.WithField("card", upCard.String()).Debug("dealer shows")
	if err := r.sendCard(w, upCard, wire.ResultNotOver); err != nil {
		return err
	}

	r.State = StatePlayerTurn
	return nil
}

// playerTurn drives the hit/stand loop. A player bust resolves the round
// immediately; the dealer never plays after a player bust.
func (r *Round) playerTurn(rw io.ReadWriter) (wire.Result, error) {
	for {
		action, err := wire.ReadAction(rw)
		if err != nil {
			return 0, err
		}

		r.log.WithField("decision", string(action)).Debug("player decision")

		switch action {
		case wire.ActionStand:
			r.State = StateDealerReveal
			return wire.ResultNotOver, nil

		case wire.ActionHit:
			card, err := r.deck.Draw()
			if err != nil {
				return 0, err
			}

			r.player.AddCard(card)
			total := r.player.Points()
			r.log.WithFields(logrus.Fields{
				"card":  card.String(),
				"total": total,
			}).Debug("dealt to player")

			if total > 21 {
				r.State = StateResolved
				return wire.ResultLoss, r.sendCard(rw, card, wire.ResultLoss)
			}

			if err := r.sendCard(rw, card, wire.ResultNotOver); err != nil {
				return 0, err
			}

		default:
			return 0, fmt.Errorf("%w: %q", ErrBadDecision, string(action))
		}
	}
}

// dealerReveal sends the dealer's hole card
func (r *Round) dealerReveal(w io.Writer) error {
	holeCard := r.dealer[1]
	r.log.WithFields(logrus.Fields{
		"card":  holeCard.String(),
		"total": r.dealer.Points(),
	}).Debug("dealer reveals")

	if err := r.sendCard(w, holeCard, wire.ResultNotOver); err != nil {
		return err
	}

	r.State = StateDealerTurn
	return nil
}

// dealerTurn draws until the dealer reaches 17. A dealer bust is an
// immediate win for the player.
func (r *Round) dealerTurn(w io.Writer) (wire.Result, error) {
	for r.dealer.Points() < dealerStandsAt {
		card, err := r.deck.Draw()
		if err != nil {
			return 0, err
		}

		r.dealer.AddCard(card)
		total := r.dealer.Points()
		r.log.WithFields(logrus.Fields{
			"card":  card.String(),
			"total": total,
		}).Debug("dealer hits")

		if total > 21 {
			r.State = StateResolved
			return wire.ResultWin, r.sendCard(w, card, wire.ResultWin)
		}

		if err := r.sendCard(w, card, wire.ResultNotOver); err != nil {
			return 0, err
		}
	}

	r.State = StateCompare
	return wire.ResultNotOver, nil
}

// compare decides the result from the final totals. Both totals are
// necessarily valid here; a bust anywhere earlier short-circuits comparison.
// The dealer's last dealt card is re-sent to carry the final result code.
func (r *Round) compare(w io.Writer) (wire.Result, error) {
	playerTotal := r.player.Points()
	dealerTotal := r.dealer.Points()

	var result wire.Result
	switch {
	case playerTotal > dealerTotal:
		result = wire.ResultWin
	case dealerTotal > playerTotal:
		result = wire.ResultLoss
	default:
		result = wire.ResultTie
	}

	r.log.WithFields(logrus.Fields{
		"playerTotal": playerTotal,
		"dealerTotal": dealerTotal,
		"result":      result.String(),
	}).Debug("round resolved")

	r.State = StateResolved
	return result, r.sendCard(w, r.dealer.LastCard(), result)
}

func (r *Round) sendCard(w io.Writer, card deck.Card, result wire.Result) error {
	_, err := w.Write(wire.CardEvent{Card: card, Result: result}.Encode())
	return err
}
