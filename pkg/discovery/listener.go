package discovery

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"lanblackjack/pkg/wire"
)

// ListenTimeout is how long a single listen window waits for an offer
const ListenTimeout = 10 * time.Second

// ErrNoOffer is returned when no valid offer arrived within the listen
// window. The caller decides whether to listen again.
var ErrNoOffer = errors.New("discovery: no offer received")

// ServerInfo identifies a discovered server
type ServerInfo struct {
	Host    string
	TCPPort uint16
	Name    string
}

// TCPAddr returns the host:port the server accepts game connections on
func (s ServerInfo) TCPAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(int(s.TCPPort)))
}

// Listen binds the discovery port and waits up to timeout for one valid
// offer. Datagrams that fail codec validation are silently ignored.
func Listen(udpPort int, timeout time.Duration) (ServerInfo, error) {
	pc, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", udpPort))
	if err != nil {
		return ServerInfo{}, err
	}
	defer pc.Close()

	return listen(pc, timeout)
}

func listen(pc net.PacketConn, timeout time.Duration) (ServerInfo, error) {
	if err := pc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return ServerInfo{}, err
	}

	buf := make([]byte, 1024)
	for {
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return ServerInfo{}, ErrNoOffer
			}

			return ServerInfo{}, err
		}

		offer, err := wire.DecodeOffer(buf[:n])
		if err != nil {
			// not an offer; keep listening
			continue
		}

		host, _, err := net.SplitHostPort(addr.String())
		if err != nil {
			return ServerInfo{}, err
		}

		return ServerInfo{
			Host:    host,
			TCPPort: offer.TCPPort,
			Name:    offer.ServerName,
		}, nil
	}
}
