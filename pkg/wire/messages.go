package wire

import (
	"encoding/binary"
	"strings"

	"lanblackjack/pkg/deck"
)

// putName right-pads or truncates a name to exactly NameLength bytes
func putName(b []byte, name string) {
	raw := []byte(name)
	if len(raw) > NameLength {
		raw = raw[:NameLength]
	}

	copy(b, raw)
}

func trimName(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

// Offer is the UDP broadcast advertising a server's TCP endpoint and name
type Offer struct {
	TCPPort    uint16
	ServerName string
}

// Encode returns the 39-byte wire form of the offer
func (o Offer) Encode() []byte {
	b := make([]byte, OfferSize)
	putHeader(b, TypeOffer)
	binary.BigEndian.PutUint16(b[5:7], o.TCPPort)
	putName(b[7:], o.ServerName)

	return b
}

// DecodeOffer decodes an offer, returning ErrMalformed on any cookie, type,
// or length problem
func DecodeOffer(b []byte) (Offer, error) {
	if err := checkHeader(b, OfferSize, TypeOffer); err != nil {
		return Offer{}, err
	}

	return Offer{
		TCPPort:    binary.BigEndian.Uint16(b[5:7]),
		ServerName: trimName(b[7:OfferSize]),
	}, nil
}

// Request is the first TCP message from the client, declaring the desired
// round count and the client's name
type Request struct {
	NumRounds  uint8
	ClientName string
}

// Encode returns the 38-byte wire form of the request
func (r Request) Encode() []byte {
	b := make([]byte, RequestSize)
	putHeader(b, TypeRequest)
	b[5] = r.NumRounds
	putName(b[6:], r.ClientName)

	return b
}

// DecodeRequest decodes a request message
func DecodeRequest(b []byte) (Request, error) {
	if err := checkHeader(b, RequestSize, TypeRequest); err != nil {
		return Request{}, err
	}

	return Request{
		NumRounds:  b[5],
		ClientName: trimName(b[6:RequestSize]),
	}, nil
}

// EncodeAction returns the 10-byte wire form of a player decision.
// The action is space-padded to exactly five bytes.
func EncodeAction(a Action) []byte {
	b := make([]byte, ActionSize)
	putHeader(b, TypePayload)

	raw := []byte(a)
	if len(raw) > ActionLength {
		raw = raw[:ActionLength]
	}
	for i := len(raw); i < ActionLength; i++ {
		raw = append(raw, ' ')
	}
	copy(b[5:], raw)

	return b
}

// DecodeAction decodes a player decision. Padding is trimmed, but the action
// itself is not validated here; an unexpected decision is the game layer's
// protocol violation to handle.
func DecodeAction(b []byte) (Action, error) {
	if err := checkHeader(b, ActionSize, TypePayload); err != nil {
		return "", err
	}

	return Action(strings.TrimSpace(string(b[5:ActionSize]))), nil
}

// CardEvent is a dealt card tagged with the round result so far. The final
// message of a round that reaches the compare step re-sends the dealer's
// last card: terminal card events double as final-result carriers.
type CardEvent struct {
	Card   deck.Card
	Result Result
}

// Encode returns the 9-byte wire form of the card event
func (e CardEvent) Encode() []byte {
	b := make([]byte, CardEventSize)
	putHeader(b, TypePayload)
	binary.BigEndian.PutUint16(b[5:7], uint16(e.Card.Rank))
	b[7] = byte(e.Card.Suit)
	b[8] = byte(e.Result)

	return b
}

// DecodeCardEvent decodes a card event message
func DecodeCardEvent(b []byte) (CardEvent, error) {
	if err := checkHeader(b, CardEventSize, TypePayload); err != nil {
		return CardEvent{}, err
	}

	return CardEvent{
		Card: deck.Card{
			Rank: int(binary.BigEndian.Uint16(b[5:7])),
			Suit: deck.Suit(b[7]),
		},
		Result: Result(b[8]),
	}, nil
}
