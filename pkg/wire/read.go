package wire

import "io"

// All TCP reads are exact-length: read the message's full fixed size or fail.
// A short read or closed peer surfaces as the underlying transport error.

func readExact(r io.Reader, size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}

	return b, nil
}

// ReadRequest reads and decodes a request message from the stream
func ReadRequest(r io.Reader) (Request, error) {
	b, err := readExact(r, RequestSize)
	if err != nil {
		return Request{}, err
	}

	return DecodeRequest(b)
}

// ReadAction reads and decodes a player decision from the stream
func ReadAction(r io.Reader) (Action, error) {
	b, err := readExact(r, ActionSize)
	if err != nil {
		return "", err
	}

	return DecodeAction(b)
}

// ReadCardEvent reads and decodes a card event from the stream
func ReadCardEvent(r io.Reader) (CardEvent, error) {
	b, err := readExact(r, CardEventSize)
	if err != nil {
		return CardEvent{}, err
	}

	return DecodeCardEvent(b)
}
