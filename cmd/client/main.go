package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"lanblackjack/internal/config"
	"lanblackjack/internal/ui"
	"lanblackjack/pkg/client"
	"lanblackjack/pkg/discovery"

	"github.com/sirupsen/logrus"
)

var name = flag.String("name", "", "team name (overrides config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	terminal := ui.New()

	teamName := *name
	if teamName == "" {
		teamName = cfg.ClientName
	}
	if teamName == "" {
		var err error
		teamName, err = terminal.PromptName("Anonymous")
		if err != nil {
			logrus.WithError(err).Fatal("could not read team name")
		}
	}

	c := client.New(teamName, terminal)

	var overall client.SessionStats
	for {
		rounds, quit, err := terminal.PromptRounds()
		if err != nil {
			logrus.WithError(err).Fatal("could not read round count")
		}

		if quit {
			return
		}

		info, ok := discover(cfg.UDPPort, terminal)
		if !ok {
			continue
		}

		session, err := c.PlaySession(info.TCPAddr(), uint8(rounds))
		overall.Merge(session)

		if err != nil {
			terminal.SessionError(err)
		}

		terminal.Summary(session, overall)
	}
}

// discover runs one listen window and reports the outcome. A timed-out
// window is not an error; the run loop just tries again.
func discover(udpPort int, terminal *ui.Terminal) (discovery.ServerInfo, bool) {
	terminal.Searching()

	info, err := discovery.Listen(udpPort, discovery.ListenTimeout)
	if err != nil {
		if errors.Is(err, discovery.ErrNoOffer) {
			terminal.NoOffer()
			return discovery.ServerInfo{}, false
		}

		logrus.WithError(err).Fatal("could not listen for offers")
	}

	terminal.FoundServer(info.Name, info.TCPAddr())
	return info, true
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
