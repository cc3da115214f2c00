// Package wire implements the fixed-layout binary protocol shared by the
// blackjack server and client. Every message starts with a 4-byte magic
// cookie and a 1-byte message type; all integers are big-endian.
package wire

import (
	"encoding/binary"
	"errors"
)

// MagicCookie prefixes every message and rejects unrelated traffic
const MagicCookie uint32 = 0xabcddcba

// message types
const (
	TypeOffer   byte = 0x2
	TypeRequest byte = 0x3
	TypePayload byte = 0x4
)

// fixed sizes, in bytes
const (
	headerSize = 5

	NameLength   = 32
	ActionLength = 5

	OfferSize     = headerSize + 2 + NameLength
	RequestSize   = headerSize + 1 + NameLength
	ActionSize    = headerSize + ActionLength
	CardEventSize = headerSize + 4
)

// ErrMalformed is returned when a buffer is too short, carries the wrong
// magic cookie, or carries an unexpected message type. A malformed message
// is rejected as a whole.
var ErrMalformed = errors.New("wire: malformed message")

func putHeader(b []byte, msgType byte) {
	binary.BigEndian.PutUint32(b[0:4], MagicCookie)
	b[4] = msgType
}

// checkHeader validates the cookie and type against an exact expected length
func checkHeader(b []byte, size int, msgType byte) error {
	if len(b) < size {
		return ErrMalformed
	}

	if binary.BigEndian.Uint32(b[0:4]) != MagicCookie || b[4] != msgType {
		return ErrMalformed
	}

	return nil
}
