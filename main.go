package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.bug.st/serial"

	"github.com/adamlipecz/pico-automation-hat/controller"
)

// Version is the firmware version reported by VERSION and in the banner.
const Version = "1.0.0"

func main() {
	flag.String("serial-port", "/dev/ttyACM0", "Serial port carrying the command protocol")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("board-type", "standard", "Board variant: standard or mini")
	flag.String("bind-address", "0.0.0.0:8080", "Bind address for the HTTP bridge (empty disables)")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("mqtt-broker", "", "MQTT broker URL, e.g. tcp://localhost:1883 (empty disables)")
	flag.String("mqtt-client-id", "automation2040w", "MQTT client identifier")
	flag.String("mqtt-topic", "automation", "Base MQTT topic")
	flag.String("mqtt-username", "", "MQTT username")
	flag.String("mqtt-password", "", "MQTT password")
	flag.Duration("status-interval", time.Second, "Interval between MQTT status publishes")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	spec := controller.StandardBoard
	if config.BoardType == "mini" {
		spec = controller.MiniBoard
	}
	board := controller.NewSimBoard(spec)

	dialer := controller.SerialDialer{
		PortName: config.SerialPort,
		Mode: &serial.Mode{
			BaudRate: config.BaudRate,
			Parity:   serial.NoParity,
			DataBits: 8,
			StopBits: serial.OneStopBit,
		},
	}

	controllerConfig, err := controller.NewConfigBuilder().
		WithDialer(dialer).
		WithBoard(board).
		WithVersion(Version).
		WithLogger(logger.With("component", "controller")).
		Build()
	if err != nil {
		logger.Error("Failed to create controller config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl, err := controller.New(ctx, controllerConfig)
	if err != nil {
		logger.Error("Failed to create controller", "error", err)
		os.Exit(1)
	}

	logger.Info("Starting automation controller",
		"version", Version,
		"serial_port", config.SerialPort,
		"board_type", config.BoardType)

	// Serial command loop
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- ctrl.Run(ctx)
	}()

	// HTTP bridge
	var httpServer *http.Server
	if config.BindAddress != "" {
		httpServer = &http.Server{
			Addr: config.BindAddress,
			Handler: &Server{
				Logger:    logger.With("component", "server"),
				Commander: ctrl,
			},
		}
		go func() {
			logger.Info("Starting HTTP server", "address", httpServer.Addr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server failed", "error", err)
				os.Exit(1)
			}
		}()
	}

	// MQTT bridge
	if config.MQTTBroker != "" {
		bridge := &MQTTBridge{
			Logger:         logger.With("component", "mqtt"),
			Commander:      ctrl,
			Broker:         config.MQTTBroker,
			ClientID:       config.MQTTClientID,
			Topic:          config.MQTTTopic,
			Username:       config.MQTTUsername,
			Password:       config.MQTTPassword,
			StatusInterval: config.StatusInterval,
		}
		if _, err := bridge.Start(ctx); err != nil {
			logger.Error("Failed to start MQTT bridge", "error", err)
			os.Exit(1)
		}
	}

	// Channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig)
	case err := <-loopDone:
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			logger.Error("Command loop failed", "error", err)
		}
	}

	cancel()

	logger.Info("Closing controller")
	if err := ctrl.Close(); err != nil {
		logger.Error("Failed to close controller", "error", err)
	}

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		logger.Info("Closing HTTP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to gracefully shutdown server", "error", err)
			os.Exit(1)
		}
	}
}
