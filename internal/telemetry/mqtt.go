// Package telemetry publishes amplifier state to an MQTT broker.
package telemetry

import (
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const disconnectQuiesceMs = 250

// MQTTPublisher delivers payloads to a fixed topic at QoS 0. State
// snapshots supersede each other, so lost messages are acceptable.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker and returns a publisher bound
// to the given topic.
func NewMQTTPublisher(broker, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(broker).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect mqtt broker %q: %w", broker, token.Error())
	}
	return &MQTTPublisher{client: client, topic: topic}, nil
}

// Publish sends one payload to the configured topic.
func (p *MQTTPublisher) Publish(payload []byte) error {
	token := p.client.Publish(p.topic, 0, false, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %q: %w", p.topic, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectQuiesceMs)
}
