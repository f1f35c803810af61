package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/adamlipecz/pico-automation-hat/proto"
)

// MQTTBridge mirrors the command protocol onto an MQTT broker.
//
// Topics, relative to the configured base (default "automation"):
//
//	<base>/relay/<n>   set a relay, payload ON/OFF (or 1/0, TRUE/FALSE)
//	<base>/output/<n>  set an output, payload 0-100 or ON/OFF
//	<base>/command     any raw protocol line; response goes to <base>/response
//	<base>/status      retained JSON snapshot, published every StatusInterval
type MQTTBridge struct {
	Logger    *slog.Logger
	Commander Commander

	Broker         string
	ClientID       string
	Topic          string
	Username       string
	Password       string
	StatusInterval time.Duration
}

// Start connects to the broker, subscribes the command topics and launches
// the periodic status publisher. The client disconnects when ctx is done.
func (b *MQTTBridge) Start(ctx context.Context) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(b.Broker)
	opts.SetClientID(b.ClientID)
	if b.Username != "" {
		opts.SetUsername(b.Username)
		opts.SetPassword(b.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		b.Logger.Warn("MQTT connection lost", "error", err)
	})
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		b.Logger.Info("MQTT connected, subscribing", "topic", b.Topic)
		b.subscribe(c)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker %q: %w", b.Broker, token.Error())
	}

	go b.publishLoop(ctx, client)
	go func() {
		<-ctx.Done()
		client.Disconnect(500)
	}()

	return client, nil
}

func (b *MQTTBridge) subscribe(c mqtt.Client) {
	subscriptions := map[string]mqtt.MessageHandler{
		b.Topic + "/relay/+":  b.handleRelay,
		b.Topic + "/output/+": b.handleOutput,
		b.Topic + "/command":  b.handleCommand,
	}
	for topic, handler := range subscriptions {
		if token := c.Subscribe(topic, 0, handler); token.Wait() && token.Error() != nil {
			b.Logger.Error("MQTT subscribe failed", "topic", topic, "error", token.Error())
		}
	}
}

// handleRelay turns <base>/relay/<n> messages into RELAY commands. The
// channel number comes from the topic, the state from the payload.
func (b *MQTTBridge) handleRelay(_ mqtt.Client, m mqtt.Message) {
	n := lastSegment(m.Topic())
	response := b.Commander.Exec(fmt.Sprintf("RELAY %s %s", n, m.Payload()))
	b.logOutcome("relay", m.Topic(), response)
}

func (b *MQTTBridge) handleOutput(_ mqtt.Client, m mqtt.Message) {
	n := lastSegment(m.Topic())
	response := b.Commander.Exec(fmt.Sprintf("OUTPUT %s %s", n, m.Payload()))
	b.logOutcome("output", m.Topic(), response)
}

// handleCommand executes a raw protocol line and publishes the response to
// <base>/response, so remote callers get the same text a serial host would.
func (b *MQTTBridge) handleCommand(c mqtt.Client, m mqtt.Message) {
	response := b.Commander.Exec(string(m.Payload()))
	if response == "" {
		return
	}
	if token := c.Publish(b.Topic+"/response", 0, false, response); token.Wait() && token.Error() != nil {
		b.Logger.Error("MQTT publish failed", "topic", b.Topic+"/response", "error", token.Error())
	}
}

// publishLoop publishes a retained status snapshot on a fixed interval so
// late subscribers immediately see the current I/O state.
func (b *MQTTBridge) publishLoop(ctx context.Context, c mqtt.Client) {
	ticker := time.NewTicker(b.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status := b.Commander.Exec(proto.KwStatus)
			if strings.HasPrefix(status, proto.Err) {
				b.Logger.Error("STATUS failed", "response", status)
				continue
			}
			if token := c.Publish(b.Topic+"/status", 0, true, status); token.Wait() && token.Error() != nil {
				b.Logger.Error("MQTT publish failed", "topic", b.Topic+"/status", "error", token.Error())
			}
		}
	}
}

func (b *MQTTBridge) logOutcome(kind, topic, response string) {
	if strings.HasPrefix(response, proto.Err) {
		b.Logger.Warn("MQTT command rejected", "kind", kind, "topic", topic, "response", response)
		return
	}
	b.Logger.Debug("MQTT command executed", "kind", kind, "topic", topic)
}

func lastSegment(topic string) string {
	if i := strings.LastIndexByte(topic, '/'); i >= 0 {
		return topic[i+1:]
	}
	return topic
}
