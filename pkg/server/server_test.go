package server

import (
	"context"
	"net"
	"testing"
	"time"

	"lanblackjack/pkg/wire"

	"github.com/stretchr/testify/assert"
)

func startServer(t *testing.T) *Server {
	t.Helper()

	s, err := New("Test Table", 0, 0)
	if err != nil {
		t.Fatalf("could not start server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		_ = s.Run(ctx)
	}()

	return s
}

func dial(t *testing.T, s *Server) net.Conn {
	t.Helper()

	conn, err := net.DialTimeout("tcp", s.listener.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatalf("could not connect: %v", err)
	}

	_ = conn.SetDeadline(time.Now().Add(10 * time.Second))
	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// standRound plays one round always standing and returns the final result
func standRound(t *testing.T, conn net.Conn) wire.Result {
	t.Helper()

	// two player cards plus the dealer's up-card
	for i := 0; i < 3; i++ {
		event, err := wire.ReadCardEvent(conn)
		if err != nil {
			t.Fatalf("could not read card event: %v", err)
		}
		if event.Result != wire.ResultNotOver {
			t.Fatalf("unexpected early result: %s", event.Result)
		}
	}

	if _, err := conn.Write(wire.EncodeAction(wire.ActionStand)); err != nil {
		t.Fatalf("could not send stand: %v", err)
	}

	// reveal plus dealer draws until the terminal message
	for {
		event, err := wire.ReadCardEvent(conn)
		if err != nil {
			t.Fatalf("could not read card event: %v", err)
		}

		if event.Result.Terminal() {
			return event.Result
		}
	}
}

func TestServer_Session(t *testing.T) {
	a := assert.New(t)

	s := startServer(t)
	conn := dial(t, s)

	_, err := conn.Write(wire.Request{NumRounds: 3, ClientName: "testers"}.Encode())
	a.NoError(err)

	for i := 0; i < 3; i++ {
		result := standRound(t, conn)
		a.True(result.Terminal())
	}

	// the server closes the connection once all rounds are played
	_, err = wire.ReadCardEvent(conn)
	a.Error(err)

	stats := s.Stats()
	a.Equal(int64(1), stats.TotalSessions)
	a.Equal(int64(0), stats.ActiveSessions)
	a.Equal(int64(3), stats.RoundsPlayed)
	a.Equal(int64(3), stats.PlayerWins+stats.PlayerLosses+stats.Ties)
}

func TestServer_ConcurrentSessions(t *testing.T) {
	a := assert.New(t)

	s := startServer(t)

	done := make(chan bool, 2)
	for i := 0; i < 2; i++ {
		conn := dial(t, s)
		go func(conn net.Conn) {
			_, err := conn.Write(wire.Request{NumRounds: 1, ClientName: "parallel"}.Encode())
			a.NoError(err)
			standRound(t, conn)
			_, _ = wire.ReadCardEvent(conn) // wait for close
			done <- true
		}(conn)
	}

	<-done
	<-done

	stats := s.Stats()
	a.Equal(int64(2), stats.TotalSessions)
	a.Equal(int64(2), stats.RoundsPlayed)
}

func TestServer_InvalidRequest(t *testing.T) {
	a := assert.New(t)

	s := startServer(t)
	conn := dial(t, s)

	// correct length, wrong magic cookie
	b := wire.Request{NumRounds: 1, ClientName: "x"}.Encode()
	b[0] ^= 0xff
	_, err := conn.Write(b)
	a.NoError(err)

	_, err = wire.ReadCardEvent(conn)
	a.Error(err)

	a.Equal(int64(0), s.Stats().RoundsPlayed)
}

func TestServer_ZeroRounds(t *testing.T) {
	a := assert.New(t)

	s := startServer(t)
	conn := dial(t, s)

	_, err := conn.Write(wire.Request{NumRounds: 0, ClientName: "x"}.Encode())
	a.NoError(err)

	// no rounds are played; the connection is closed immediately
	_, err = wire.ReadCardEvent(conn)
	a.Error(err)
	a.Equal(int64(0), s.Stats().RoundsPlayed)
}

func TestServer_Shutdown(t *testing.T) {
	a := assert.New(t)

	s, err := New("Test Table", 0, 0)
	a.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		a.Equal(context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
