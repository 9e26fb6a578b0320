package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/ramos-ahron/Led-Intensity-Controller/internal/telemetry"
)

// bufferCapacity bounds how many messages accumulate while the broker is
// unreachable. At one record per transmit iteration this covers several
// minutes of outage.
const bufferCapacity = 512

// RealPublisher publishes to an actual MQTT broker. While disconnected
// it parks messages in a bounded outbox and replays them on reconnect.
type RealPublisher struct {
	client paho.Client

	mu  sync.Mutex
	buf *outbox
}

// NewRealPublisher creates a publisher that connects (and keeps
// reconnecting) to the given broker in the background.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{
		buf: newOutbox(bufferCapacity),
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("ledctl").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

// onConnect replays messages parked while disconnected, oldest first.
func (p *RealPublisher) onConnect(client paho.Client) {
	p.mu.Lock()
	msgs := p.buf.takeAll()
	p.mu.Unlock()

	for _, m := range msgs {
		client.Publish(m.topic, m.qos, m.retained, m.payload)
	}
}

// Publish mirrors one telemetry record (QoS 0, not retained). A record
// that cannot be delivered right now is buffered, not an error.
func (p *RealPublisher) Publish(rec telemetry.Record) error {
	payload, err := FormatPayload(rec)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	return p.send(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event (QoS 1 — we want these
// delivered).
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return p.send(TopicSystem, 1, event.Retained, payload)
}

func (p *RealPublisher) send(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.mu.Lock()
		p.buf.add(outboxEntry{topic: topic, qos: qos, retained: retained, payload: payload})
		p.mu.Unlock()
		return nil
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
