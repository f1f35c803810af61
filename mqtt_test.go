package main

import (
	"log/slog"
	"testing"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/adamlipecz/pico-automation-hat/controller"
)

// fakeMessage implements mqtt.Message for handler tests.
type fakeMessage struct {
	topic   string
	payload string
}

func (m fakeMessage) Duplicate() bool   { return false }
func (m fakeMessage) Qos() byte         { return 0 }
func (m fakeMessage) Retained() bool    { return false }
func (m fakeMessage) Topic() string     { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte   { return []byte(m.payload) }
func (m fakeMessage) Ack()              {}

func newTestBridge() (*MQTTBridge, *controller.SimBoard) {
	board := controller.NewSimBoard(controller.StandardBoard)
	bridge := &MQTTBridge{
		Logger:    slog.New(slog.DiscardHandler),
		Commander: controller.NewSession(board, Version),
		Topic:     "automation",
	}
	return bridge, board
}

func TestMQTTHandleRelay(t *testing.T) {
	bridge, board := newTestBridge()

	bridge.handleRelay(nil, fakeMessage{topic: "automation/relay/2", payload: "ON"})
	if !board.Relay(1) {
		t.Error("relay 2 not driven on")
	}

	bridge.handleRelay(nil, fakeMessage{topic: "automation/relay/2", payload: "OFF"})
	if board.Relay(1) {
		t.Error("relay 2 not driven off")
	}

	// Out-of-range channels are rejected without touching the board.
	bridge.handleRelay(nil, fakeMessage{topic: "automation/relay/7", payload: "ON"})
	for i := 0; i < 3; i++ {
		if board.Relay(i) {
			t.Errorf("relay %d driven by rejected message", i+1)
		}
	}
}

func TestMQTTHandleOutput(t *testing.T) {
	bridge, board := newTestBridge()

	bridge.handleOutput(nil, fakeMessage{topic: "automation/output/3", payload: "60"})
	if board.Output(2) != 0.6 {
		t.Errorf("output level %v, want 0.6", board.Output(2))
	}

	bridge.handleOutput(nil, fakeMessage{topic: "automation/output/3", payload: "OFF"})
	if board.Output(2) != 0 {
		t.Errorf("output level %v, want 0", board.Output(2))
	}
}

func TestLastSegment(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"automation/relay/1", "1"},
		{"automation/output/12", "12"},
		{"relay", "relay"},
		{"automation/relay/", ""},
	}
	for _, test := range tests {
		if got := lastSegment(test.topic); got != test.want {
			t.Errorf("lastSegment(%q) = %q, want %q", test.topic, got, test.want)
		}
	}
}

// Interface compliance for the fake.
var _ mqtt.Message = fakeMessage{}
