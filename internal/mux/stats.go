package mux

import "net/http"

func (m *Mux) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.stats.Stats())
	}
}
