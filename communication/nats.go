package communication

import (
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

// EventsSubject carries every tournament progress line when a NATS broker
// is configured.
const EventsSubject = "negobench.events"

// NATSBroker encapsulates a NATS connection for external event fan-out.
// It is optional: a nil *NATSBroker publishes nothing.
type NATSBroker struct {
	Conn *nats.Conn
}

// NewNATSBroker connects to the provided URL.
func NewNATSBroker(url string) (*NATSBroker, error) {
	nc, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &NATSBroker{Conn: nc}, nil
}

// Publish sends data on the provided subject. Safe on a nil broker.
func (b *NATSBroker) Publish(subject string, data []byte) error {
	if b == nil {
		return nil
	}
	return b.Conn.Publish(subject, data)
}

// Subscribe registers a callback for a specific subject.
func (b *NATSBroker) Subscribe(subject string, cb nats.MsgHandler) error {
	_, err := b.Conn.Subscribe(subject, cb)
	return err
}

// Close gracefully closes the connection. Safe on a nil broker.
func (b *NATSBroker) Close() {
	if b == nil {
		return
	}
	b.Conn.Close()
}

// ConnectNATS dials NATS if url is non-empty, logging rather than failing
// when the broker is unreachable: event fan-out is best effort.
func ConnectNATS(url string) *NATSBroker {
	if url == "" {
		return nil
	}
	broker, err := NewNATSBroker(url)
	if err != nil {
		log.Printf("NATS unavailable at %s, events stay local: %v", url, err)
		return nil
	}
	log.Printf("Connected to NATS at %s", url)
	return broker
}
