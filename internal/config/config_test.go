package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := setEnv("BJ_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := setEnv("BJ_SERVER_NAME", "Env Table")
	defer clear2()

	a := assert.New(t)
	cfg := Instance()

	// env beats file, file beats defaults
	a.Equal("Env Table", cfg.ServerName)
	a.Equal(4500, cfg.TCPPort)
	a.Equal(14000, cfg.UDPPort)
	a.Equal(":8080", cfg.HTTPAddr)
	a.Equal("debug", cfg.Log.Level)

	// ensure that it's only loaded once
	_ = os.Setenv("BJ_SERVER_NAME", "Other Table")
	// ensure we aren't using a pointer
	cfg.ServerName = "bad"
	cfg = Instance()
	a.Equal("Env Table", cfg.ServerName)
}

func TestDefaults(t *testing.T) {
	clear1 := setEnv("BJ_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	a := assert.New(t)
	a.NoError(Load())

	cfg := Instance()
	a.Equal("Blackjack Server", cfg.ServerName)
	a.Equal(DefaultUDPPort, cfg.UDPPort)
	a.Equal(0, cfg.TCPPort)
	a.Equal("", cfg.HTTPAddr)
}

func setEnv(key, val string) func() {
	orig := os.Getenv(key)
	_ = os.Setenv(key, val)
	return func() {
		if orig == "" {
			_ = os.Unsetenv(key)
		} else {
			_ = os.Setenv(key, orig)
		}
	}
}
