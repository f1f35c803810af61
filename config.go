package main

import (
	"flag"
	"os"
	"strconv"
	"time"
)

// Config holds the daemon configuration
type Config struct {
	// SerialPort is the path to the serial device carrying the command
	// protocol (e.g. "/dev/ttyACM0")
	SerialPort string
	// BaudRate is the baud rate for serial communication (e.g. 115200)
	BaudRate int
	// BoardType selects the channel layout: "standard" or "mini"
	BoardType string
	// BindAddress is the address the HTTP bridge listens on
	// (e.g. "0.0.0.0:8080"); empty disables HTTP
	BindAddress string
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string
	// MQTTBroker is the broker URL (e.g. "tcp://localhost:1883"); empty
	// disables the MQTT bridge
	MQTTBroker string
	// MQTTClientID identifies this daemon to the broker
	MQTTClientID string
	// MQTTTopic is the base topic for command and status topics
	MQTTTopic string
	// MQTTUsername and MQTTPassword are optional broker credentials
	MQTTUsername string
	MQTTPassword string
	// StatusInterval is how often the MQTT bridge publishes a status
	// snapshot
	StatusInterval time.Duration
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.SerialPort = "/dev/ttyACM0"
		c.BaudRate = 115200
		c.BoardType = "standard"
		c.BindAddress = "0.0.0.0:8080"
		c.LogLevel = "info"
		c.MQTTClientID = "automation2040w"
		c.MQTTTopic = "automation"
		c.StatusInterval = time.Second
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if port := os.Getenv("SERIAL_PORT"); port != "" {
			c.SerialPort = port
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if board := os.Getenv("BOARD_TYPE"); board != "" {
			c.BoardType = board
		}

		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if broker := os.Getenv("MQTT_BROKER"); broker != "" {
			c.MQTTBroker = broker
		}

		if id := os.Getenv("MQTT_CLIENT_ID"); id != "" {
			c.MQTTClientID = id
		}

		if topic := os.Getenv("MQTT_TOPIC"); topic != "" {
			c.MQTTTopic = topic
		}

		if user := os.Getenv("MQTT_USERNAME"); user != "" {
			c.MQTTUsername = user
		}

		if pass := os.Getenv("MQTT_PASSWORD"); pass != "" {
			c.MQTTPassword = pass
		}

		if interval := os.Getenv("STATUS_INTERVAL"); interval != "" {
			if d, err := time.ParseDuration(interval); err == nil {
				c.StatusInterval = d
			}
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags
func WithFlags(fSet *flag.FlagSet) ConfigOption {
	return func(c *Config) error {
		fSet.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "serial-port":
				c.SerialPort = f.Value.String()
			case "baud-rate":
				if b, err := strconv.Atoi(f.Value.String()); err == nil {
					c.BaudRate = b
				}
			case "board-type":
				c.BoardType = f.Value.String()
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "log-level":
				c.LogLevel = f.Value.String()
			case "mqtt-broker":
				c.MQTTBroker = f.Value.String()
			case "mqtt-client-id":
				c.MQTTClientID = f.Value.String()
			case "mqtt-topic":
				c.MQTTTopic = f.Value.String()
			case "mqtt-username":
				c.MQTTUsername = f.Value.String()
			case "mqtt-password":
				c.MQTTPassword = f.Value.String()
			case "status-interval":
				if d, err := time.ParseDuration(f.Value.String()); err == nil {
					c.StatusInterval = d
				}
			}
		})
		return nil
	}
}
