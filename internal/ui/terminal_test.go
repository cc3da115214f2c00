package ui

import (
	"testing"

	"lanblackjack/pkg/deck"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestParseRounds(t *testing.T) {
	a := assert.New(t)

	rounds, quit, err := parseRounds(" 7 ")
	a.NoError(err)
	a.False(quit)
	a.Equal(7, rounds)

	_, quit, err = parseRounds("Q")
	a.NoError(err)
	a.True(quit)

	_, _, err = parseRounds("0")
	a.Error(err)

	_, _, err = parseRounds("256")
	a.Error(err)

	_, _, err = parseRounds("seven")
	a.Error(err)
}

func TestCardText(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	assert.Equal(t, "A♥", cardText(deck.CardFromString("1h")))
	assert.Equal(t, "K♠", cardText(deck.CardFromString("13s")))
}
