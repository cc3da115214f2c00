package mux

import (
	"net/http"

	"lanblackjack/pkg/server"

	gmux "github.com/gorilla/mux"
)

// StatsProvider supplies the session counters shown by the stats endpoint
type StatsProvider interface {
	Stats() server.StatsSnapshot
}

// Mux handles the read-only ops HTTP requests. The game protocol itself
// never touches HTTP.
type Mux struct {
	*gmux.Router
	version string
	stats   StatsProvider
}

// NewMux returns a new HTTP mux
func NewMux(version string, stats StatsProvider) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		stats:   stats,
	}

	this.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	this.Methods(http.MethodGet).Path("/stats").Handler(this.getStats())

	return this
}
