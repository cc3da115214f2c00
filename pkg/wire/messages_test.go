package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"lanblackjack/pkg/deck"

	"github.com/stretchr/testify/assert"
)

func TestOffer_RoundTrip(t *testing.T) {
	a := assert.New(t)

	b := Offer{TCPPort: 61234, ServerName: "Dealer's Table"}.Encode()
	a.Equal(OfferSize, len(b))

	offer, err := DecodeOffer(b)
	a.NoError(err)
	a.Equal(uint16(61234), offer.TCPPort)
	a.Equal("Dealer's Table", offer.ServerName)
}

func TestOffer_NameTruncation(t *testing.T) {
	a := assert.New(t)

	long := strings.Repeat("x", 40)
	offer, err := DecodeOffer(Offer{TCPPort: 1, ServerName: long}.Encode())
	a.NoError(err)
	a.Equal(long[:NameLength], offer.ServerName)

	// empty names survive too
	offer, err = DecodeOffer(Offer{TCPPort: 1}.Encode())
	a.NoError(err)
	a.Equal("", offer.ServerName)
}

func TestRequest_RoundTrip(t *testing.T) {
	a := assert.New(t)

	for _, rounds := range []uint8{1, 17, 255} {
		b := Request{NumRounds: rounds, ClientName: "Team Rocket"}.Encode()
		a.Equal(RequestSize, len(b))

		req, err := DecodeRequest(b)
		a.NoError(err)
		a.Equal(rounds, req.NumRounds)
		a.Equal("Team Rocket", req.ClientName)
	}
}

func TestAction_RoundTrip(t *testing.T) {
	a := assert.New(t)

	for _, action := range []Action{ActionHit, ActionStand} {
		b := EncodeAction(action)
		a.Equal(ActionSize, len(b))

		got, err := DecodeAction(b)
		a.NoError(err)
		a.Equal(action, got)
		a.True(got.Valid())
	}

	// a short action is space-padded on the wire and trimmed on decode
	got, err := DecodeAction(EncodeAction("Hi"))
	a.NoError(err)
	a.Equal(Action("Hi"), got)
	a.False(got.Valid())
}

func TestCardEvent_RoundTrip(t *testing.T) {
	a := assert.New(t)

	for rank := 1; rank <= 13; rank++ {
		for suit := deck.Hearts; suit <= deck.Spades; suit++ {
			for _, result := range []Result{ResultNotOver, ResultTie, ResultLoss, ResultWin} {
				b := CardEvent{
					Card:   deck.Card{Rank: rank, Suit: suit},
					Result: result,
				}.Encode()
				a.Equal(CardEventSize, len(b))

				event, err := DecodeCardEvent(b)
				a.NoError(err)
				a.Equal(rank, event.Card.Rank)
				a.Equal(suit, event.Card.Suit)
				a.Equal(result, event.Result)
			}
		}
	}
}

func TestDecode_BadCookie(t *testing.T) {
	a := assert.New(t)

	corrupt := func(b []byte) []byte {
		b[0] ^= 0xff
		return b
	}

	_, err := DecodeOffer(corrupt(Offer{TCPPort: 1, ServerName: "x"}.Encode()))
	a.Equal(ErrMalformed, err)

	_, err = DecodeRequest(corrupt(Request{NumRounds: 1, ClientName: "x"}.Encode()))
	a.Equal(ErrMalformed, err)

	_, err = DecodeAction(corrupt(EncodeAction(ActionHit)))
	a.Equal(ErrMalformed, err)

	_, err = DecodeCardEvent(corrupt(CardEvent{Card: deck.CardFromString("1h")}.Encode()))
	a.Equal(ErrMalformed, err)
}

func TestDecode_WrongType(t *testing.T) {
	a := assert.New(t)

	// an offer is not a request
	_, err := DecodeRequest(Offer{TCPPort: 1, ServerName: "x"}.Encode())
	a.Equal(ErrMalformed, err)

	// a card event is not an offer
	_, err = DecodeOffer(CardEvent{Card: deck.CardFromString("1h")}.Encode())
	a.Equal(ErrMalformed, err)
}

func TestDecode_ShortBuffer(t *testing.T) {
	a := assert.New(t)

	b := Offer{TCPPort: 1, ServerName: "x"}.Encode()
	_, err := DecodeOffer(b[:len(b)-1])
	a.Equal(ErrMalformed, err)

	_, err = DecodeRequest(nil)
	a.Equal(ErrMalformed, err)

	_, err = DecodeAction([]byte{0xab, 0xcd})
	a.Equal(ErrMalformed, err)

	_, err = DecodeCardEvent([]byte{})
	a.Equal(ErrMalformed, err)
}

func TestRead_Exact(t *testing.T) {
	a := assert.New(t)

	var stream bytes.Buffer
	stream.Write(Request{NumRounds: 3, ClientName: "abc"}.Encode())
	stream.Write(EncodeAction(ActionStand))
	stream.Write(CardEvent{Card: deck.CardFromString("12d"), Result: ResultWin}.Encode())

	req, err := ReadRequest(&stream)
	a.NoError(err)
	a.Equal(uint8(3), req.NumRounds)

	action, err := ReadAction(&stream)
	a.NoError(err)
	a.Equal(ActionStand, action)

	event, err := ReadCardEvent(&stream)
	a.NoError(err)
	a.Equal(deck.CardFromString("12d"), event.Card)
	a.Equal(ResultWin, event.Result)

	// a truncated stream is a transport error, not a partial message
	stream.Write(EncodeAction(ActionHit)[:4])
	_, err = ReadAction(&stream)
	a.Error(err)
	a.NotEqual(ErrMalformed, err)
}

func TestRead_ClosedStream(t *testing.T) {
	_, err := ReadCardEvent(bytes.NewReader(nil))
	assert.Equal(t, io.EOF, err)
}

func TestResult_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("not-over", ResultNotOver.String())
	a.Equal("tie", ResultTie.String())
	a.Equal("loss", ResultLoss.String())
	a.Equal("win", ResultWin.String())
	a.Equal("unknown", Result(9).String())

	a.False(ResultNotOver.Terminal())
	a.True(ResultWin.Terminal())
}
