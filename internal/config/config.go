package config

import (
	"os"

	"lanblackjack/internal/util"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// DefaultUDPPort is the well-known discovery port both ends agree on
const DefaultUDPPort = 13122

// Config provides configuration for the blackjack server and client
type Config struct {
	loaded     bool
	ServerName string `yaml:"serverName" envconfig:"server_name"`
	ClientName string `yaml:"clientName" envconfig:"client_name"`
	TCPPort    int    `yaml:"tcpPort" envconfig:"tcp_port"`
	UDPPort    int    `yaml:"udpPort" envconfig:"udp_port"`
	HTTPAddr   string `yaml:"httpAddr" envconfig:"http_addr"`
	Log        struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration.
// The YAML config file is optional; environment variables (prefix BJ_, with
// an optional .env file) override whatever the file provides.
func Load() error {
	_ = godotenv.Load()

	config = Config{
		ServerName: "Blackjack Server",
		UDPPort:    DefaultUDPPort,
	}

	configFile := util.Getenv("BJ_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("bj", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
