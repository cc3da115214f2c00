// Package server accepts blackjack sessions over TCP and advertises the
// server on the local network. Each accepted connection gets its own
// goroutine and owns its own decks and hands; connections share nothing but
// the stats counters.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"lanblackjack/pkg/deck"
	"lanblackjack/pkg/discovery"
	"lanblackjack/pkg/game"
	"lanblackjack/pkg/wire"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every TCP read and write during a session
const DefaultTimeout = 30 * time.Second

// Server is a blackjack game server
type Server struct {
	name     string
	udpPort  int
	timeout  time.Duration
	listener net.Listener
	stats    *Stats
	log      logrus.FieldLogger
}

// New binds the TCP listening socket and returns a server.
// A tcpPort of 0 picks an ephemeral port; the bound port is what gets
// advertised in offers.
func New(name string, tcpPort, udpPort int) (*Server, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", tcpPort))
	if err != nil {
		return nil, err
	}

	return &Server{
		name:     name,
		udpPort:  udpPort,
		timeout:  DefaultTimeout,
		listener: listener,
		stats:    &Stats{},
		log:      logrus.WithField("server", name),
	}, nil
}

// TCPPort returns the port the server accepts game connections on
func (s *Server) TCPPort() uint16 {
	return uint16(s.listener.Addr().(*net.TCPAddr).Port)
}

// Stats returns a point-in-time snapshot of the session counters
func (s *Server) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// Run starts the offer broadcaster and accepts connections until ctx is
// cancelled. Cancelling the context closes the listener, which unblocks
// Accept.
func (s *Server) Run(ctx context.Context) error {
	offer := wire.Offer{
		TCPPort:    s.TCPPort(),
		ServerName: s.name,
	}

	go func() {
		if err := discovery.NewBroadcaster(offer, s.udpPort).Run(ctx); err != nil && ctx.Err() == nil {
			s.log.WithError(err).Error("broadcaster stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	s.log.WithFields(logrus.Fields{
		"tcpPort": s.TCPPort(),
		"udpPort": s.udpPort,
	}).Info("listening")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return err
		}

		go s.handleConn(conn)
	}
}

// handleConn runs one full session: a request followed by the requested
// number of rounds. A session that fails part-way is abandoned; other
// connections are unaffected.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	log := s.log.WithFields(logrus.Fields{
		"session":    uuid.New().String(),
		"remoteAddr": conn.RemoteAddr().String(),
	})

	s.stats.sessionStarted()
	defer s.stats.sessionEnded()

	tc := &timeoutConn{Conn: conn, timeout: s.timeout}

	req, err := wire.ReadRequest(tc)
	if err != nil {
		log.WithError(err).Warn("invalid request")
		return
	}

	if req.NumRounds == 0 {
		log.Warn("requested zero rounds")
		return
	}

	log = log.WithField("client", req.ClientName)
	log.WithField("rounds", req.NumRounds).Info("session started")

	for i := 1; i <= int(req.NumRounds); i++ {
		d := deck.New()
		d.Shuffle()

		round := game.NewRound(log.WithField("round", i), d)
		result, err := round.Play(tc)
		if err != nil {
			log.WithError(err).WithField("round", i).Warn("session aborted")
			return
		}

		log.WithFields(logrus.Fields{
			"round":       i,
			"result":      result.String(),
			"playerTotal": round.PlayerTotal(),
			"dealerTotal": round.DealerTotal(),
		}).Info("round complete")

		s.stats.roundPlayed(result)
	}

	log.Info("session complete")
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
