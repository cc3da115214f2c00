// Package client plays blackjack sessions against a discovered server. The
// round logic here is purely reactive: it renders the server's authoritative
// card stream and relays the player's decisions, deciding nothing itself.
package client

import (
	"fmt"
	"net"
	"time"

	"lanblackjack/pkg/deck"
	"lanblackjack/pkg/wire"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds the TCP connect and every read and write
const DefaultTimeout = 30 * time.Second

// UI is the presentation collaborator. The session flow never touches the
// terminal directly; it reports card events and asks for decisions.
type UI interface {
	// RoundStart is called before each round begins
	RoundStart(n, total int)

	// PlayerCard is called for each card dealt to the player
	PlayerCard(card deck.Card, total int)

	// DealerCard is called for each dealer card shown
	DealerCard(card deck.Card, total int)

	// PromptAction asks for a hit/stand decision. It must only return
	// wire.ActionHit or wire.ActionStand.
	PromptAction(total int) (wire.Action, error)

	// RoundResult reports the final result of a round
	RoundResult(result wire.Result, playerTotal, dealerTotal int)
}

// Client is a blackjack client identified by a team name
type Client struct {
	name    string
	ui      UI
	timeout time.Duration
	log     logrus.FieldLogger
}

// New returns a new client
func New(name string, ui UI) *Client {
	return &Client{
		name:    name,
		ui:      ui,
		timeout: DefaultTimeout,
		log:     logrus.WithField("client", name),
	}
}

// PlaySession connects to addr, requests numRounds rounds, and plays them
// sequentially on the one connection. The connection is closed on every
// exit path. The stats cover the rounds completed before any error.
func (c *Client) PlaySession(addr string, numRounds uint8) (SessionStats, error) {
	var stats SessionStats

	conn, err := net.DialTimeout("tcp", addr, c.timeout)
	if err != nil {
		return stats, err
	}
	defer conn.Close()

	c.log.WithField("addr", addr).Info("connected")

	tc := &timeoutConn{Conn: conn, timeout: c.timeout}

	request := wire.Request{
		NumRounds:  numRounds,
		ClientName: c.name,
	}
	if _, err := tc.Write(request.Encode()); err != nil {
		return stats, err
	}

	for i := 1; i <= int(numRounds); i++ {
		c.ui.RoundStart(i, int(numRounds))

		result, err := c.playRound(tc)
		if err != nil {
			return stats, fmt.Errorf("round %d: %w", i, err)
		}

		stats.record(result)
	}

	return stats, nil
}

// playRound mirrors one server round. Every received card event drives the
// presentation; the result field alone decides when the round is over.
func (c *Client) playRound(rw *timeoutConn) (wire.Result, error) {
	var player, dealer deck.Hand

	// two player cards, then the dealer's up-card
	for i := 0; i < 2; i++ {
		event, err := wire.ReadCardEvent(rw)
		if err != nil {
			return 0, err
		}

		player.AddCard(event.Card)
		c.ui.PlayerCard(event.Card, player.Points())
	}

	event, err := wire.ReadCardEvent(rw)
	if err != nil {
		return 0, err
	}

	dealer.AddCard(event.Card)
	c.ui.DealerCard(event.Card, dealer.Points())

	// player's turn: one decision per received card
	for {
		action, err := c.ui.PromptAction(player.Points())
		if err != nil {
			return 0, err
		}

		if !action.Valid() {
			return 0, fmt.Errorf("ui returned invalid action: %q", string(action))
		}

		if _, err := rw.Write(wire.EncodeAction(action)); err != nil {
			return 0, err
		}

		if action == wire.ActionStand {
			break
		}

		event, err := wire.ReadCardEvent(rw)
		if err != nil {
			return 0, err
		}

		player.AddCard(event.Card)
		c.ui.PlayerCard(event.Card, player.Points())

		if event.Result.Terminal() {
			// busted
			c.ui.RoundResult(event.Result, player.Points(), dealer.Points())
			return event.Result, nil
		}
	}

	// dealer's hole card
	event, err = wire.ReadCardEvent(rw)
	if err != nil {
		return 0, err
	}

	dealer.AddCard(event.Card)
	c.ui.DealerCard(event.Card, dealer.Points())

	// dealer draws until the terminal message. The terminal message either
	// re-sends the dealer's last card as the result carrier (compare) or
	// carries the card that busted the dealer.
	for !event.Result.Terminal() {
		event, err = wire.ReadCardEvent(rw)
		if err != nil {
			return 0, err
		}

		if dealer.Points() < 17 {
			dealer.AddCard(event.Card)
			c.ui.DealerCard(event.Card, dealer.Points())
		}
	}

	c.ui.RoundResult(event.Result, player.Points(), dealer.Points())
	return event.Result, nil
}

// timeoutConn applies the session timeout to every read and write
type timeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *timeoutConn) Read(b []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.Conn.Read(b)
}

func (c *timeoutConn) Write(b []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}

	return c.Conn.Write(b)
}
