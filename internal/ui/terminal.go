// Package ui renders the client's view of the game on the terminal and
// collects the player's decisions. It is the only package that touches
// stdin/stdout; the session and round logic stay presentation-free.
package ui

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"lanblackjack/pkg/client"
	"lanblackjack/pkg/deck"
	"lanblackjack/pkg/wire"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Terminal implements client.UI on top of pterm
type Terminal struct{}

// New returns a terminal UI. Color output is disabled when stdout is not a
// terminal.
func New() *Terminal {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableColor()
	}

	return &Terminal{}
}

// cardText renders a card with its suit color (hearts/diamonds red,
// clubs/spades gray)
func cardText(card deck.Card) string {
	if card.Suit == deck.Hearts || card.Suit == deck.Diamonds {
		return pterm.FgRed.Sprint(card.String())
	}

	return pterm.FgGray.Sprint(card.String())
}

// PlayerCard shows a card dealt to the player
func (t *Terminal) PlayerCard(card deck.Card, total int) {
	pterm.Info.Printfln("You received %s (total %d)", cardText(card), total)
}

// DealerCard shows a dealer card
func (t *Terminal) DealerCard(card deck.Card, total int) {
	pterm.Info.Printfln("Dealer shows %s (total %d)", cardText(card), total)
}

// PromptAction asks the player to hit or stand, re-asking until the input is
// valid
func (t *Terminal) PromptAction(total int) (wire.Action, error) {
	for {
		choice, err := pterm.DefaultInteractiveTextInput.
			Show(fmt.Sprintf("Hit or stand at %d? [h/s]", total))
		if err != nil {
			return "", err
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "h", "hit":
			return wire.ActionHit, nil
		case "s", "stand":
			return wire.ActionStand, nil
		}

		pterm.Warning.Println("enter 'h' to hit or 's' to stand")
	}
}

// RoundResult announces how the round ended
func (t *Terminal) RoundResult(result wire.Result, playerTotal, dealerTotal int) {
	switch result {
	case wire.ResultWin:
		if dealerTotal > 21 {
			pterm.Success.Printfln("Dealer busted with %d — you win!", dealerTotal)
		} else {
			pterm.Success.Printfln("You win! %d against the dealer's %d", playerTotal, dealerTotal)
		}
	case wire.ResultLoss:
		if playerTotal > 21 {
			pterm.Error.Printfln("Busted with %d — dealer wins", playerTotal)
		} else {
			pterm.Error.Printfln("Dealer wins with %d against your %d", dealerTotal, playerTotal)
		}
	case wire.ResultTie:
		pterm.Warning.Printfln("Push — both hold %d", playerTotal)
	}
}

// RoundStart marks the start of a round
func (t *Terminal) RoundStart(n, total int) {
	pterm.DefaultSection.Printfln("Round %d of %d", n, total)
}

// Searching announces the discovery phase
func (t *Terminal) Searching() {
	pterm.Info.Println("Looking for a table on the local network...")
}

// NoOffer reports an empty discovery window
func (t *Terminal) NoOffer() {
	pterm.Warning.Println("No table found, listening again...")
}

// FoundServer reports a discovered server
func (t *Terminal) FoundServer(name, addr string) {
	pterm.Success.Printfln("Found table '%s' at %s", name, addr)
}

// SessionError reports a session that ended early
func (t *Terminal) SessionError(err error) {
	pterm.Error.Printfln("Session ended: %v", err)
}

// PromptName asks for the player's team name
func (t *Terminal) PromptName(defaultName string) (string, error) {
	name, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultName).
		Show("Team name (max 32 chars)")
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}

	return name, nil
}

// PromptRounds asks how many rounds to play. It returns quit=true when the
// player enters 'q'.
func (t *Terminal) PromptRounds() (rounds int, quit bool, err error) {
	for {
		input, err := pterm.DefaultInteractiveTextInput.
			Show("How many rounds do you want to play? (1-255, or 'q' to quit)")
		if err != nil {
			return 0, false, err
		}

		rounds, quit, err := parseRounds(input)
		if err != nil {
			pterm.Warning.Println(err.Error())
			continue
		}

		return rounds, quit, nil
	}
}

func parseRounds(input string) (int, bool, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "q" {
		return 0, true, nil
	}

	rounds, err := strconv.Atoi(input)
	if err != nil {
		return 0, false, errors.New("enter a number between 1 and 255, or 'q' to quit")
	}

	if rounds < 1 || rounds > 255 {
		return 0, false, errors.New("round count must be between 1 and 255")
	}

	return rounds, false, nil
}

// Summary renders the session and overall tallies
func (t *Terminal) Summary(session, overall client.SessionStats) {
	data := pterm.TableData{
		{"", "Wins", "Losses", "Ties", "Win rate"},
		append([]string{"Session"}, row(session)...),
		append([]string{"Overall"}, row(overall)...),
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func row(stats client.SessionStats) []string {
	return []string{
		strconv.Itoa(stats.Wins),
		strconv.Itoa(stats.Losses),
		strconv.Itoa(stats.Ties),
		fmt.Sprintf("%.1f%%", stats.WinRate()),
	}
}
