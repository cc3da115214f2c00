package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"lanblackjack/internal/config"
	"lanblackjack/internal/mux"
	"lanblackjack/pkg/server"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var httpAddr = flag.String("http", "", "ops HTTP listen address (overrides config)")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	srv, err := server.New(cfg.ServerName, cfg.TCPPort, cfg.UDPPort)
	if err != nil {
		logrus.WithError(err).Fatal("could not bind TCP listener")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := *httpAddr
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	if addr != "" {
		startOpsServer(ctx, addr, srv)
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Fatal(err)
	}

	logrus.Info("server stopped")
}

// startOpsServer serves the read-only health/stats endpoints
func startOpsServer(ctx context.Context, addr string, srv *server.Server) {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	ops := &http.Server{
		Addr:         addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, srv))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", addr).Info("ops endpoint listening")
		if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Error("ops endpoint failed")
		}
	}()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = ops.Shutdown(shutdownCtx)
	}()
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
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
