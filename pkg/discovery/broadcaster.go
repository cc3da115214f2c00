// Package discovery advertises a blackjack server on the local network over
// UDP broadcast and lets a client wait for one such offer.
package discovery

import (
	"context"
	"net"
	"time"

	"lanblackjack/pkg/wire"

	"github.com/sirupsen/logrus"
)

// BroadcastInterval is how often the server re-sends its offer
const BroadcastInterval = time.Second

// Broadcaster periodically sends a server's offer to the network broadcast
// address. The offer bytes are encoded once up front; the running broadcaster
// holds no mutable state and needs no synchronization.
type Broadcaster struct {
	offer    []byte
	dest     *net.UDPAddr
	interval time.Duration
	log      logrus.FieldLogger
}

// NewBroadcaster returns a broadcaster for the given offer on the given
// discovery port
func NewBroadcaster(offer wire.Offer, udpPort int) *Broadcaster {
	return &Broadcaster{
		offer:    offer.Encode(),
		dest:     &net.UDPAddr{IP: net.IPv4bcast, Port: udpPort},
		interval: BroadcastInterval,
		log:      logrus.WithField("component", "broadcaster"),
	}
}

// Run broadcasts the offer once per interval until ctx is cancelled.
// Send failures are logged and the loop keeps going.
func (b *Broadcaster) Run(ctx context.Context) error {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		return err
	}
	defer conn.Close()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		if _, err := conn.WriteTo(b.offer, b.dest); err != nil {
			b.log.WithError(err).Warn("could not broadcast offer")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
