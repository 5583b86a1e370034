package hermes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const defaultPublishTimeout = 5 * time.Second

type Client interface {
	Publish(subject string, data interface{}) error
	Close()
}

// streamPublisher is the slice of jetstream.JetStream the client publishes through.
type streamPublisher interface {
	Publish(ctx context.Context, subject string, payload []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// NATSClient publishes churn events into the CHURN_EVENTS stream and waits
// for the stream to acknowledge each one.
type NATSClient struct {
	conn    *nats.Conn
	js      streamPublisher
	timeout time.Duration
	logger  *slog.Logger
}

// NewNATSClient connects, then creates or updates the event stream. Without
// the stream no publish could be acknowledged, so a failure there is returned.
func NewNATSClient(ctx context.Context, url string, logger *slog.Logger) (*NATSClient, error) {
	nc, err := nats.Connect(url,
		nats.Name("churnwatch"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	if err := ensureStream(ctx, js); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream %s: %w", StreamName, err)
	}

	return &NATSClient{conn: nc, js: js, timeout: defaultPublishTimeout, logger: logger}, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream) error {
	maxAge, _ := time.ParseDuration(StreamMaxAge)
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: StreamSubjects,
		MaxAge:   maxAge,
	})
	return err
}

// Publish encodes data as JSON and publishes it to subject. Subjects carry
// the prediction id, so the subject doubles as the dedup message id.
func (c *NATSClient) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	ack, err := c.js.Publish(ctx, subject, payload, jetstream.WithMsgID(subject))
	if err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	c.logger.Debug("event stored", "subject", subject, "stream", ack.Stream, "seq", ack.Sequence, "duplicate", ack.Duplicate)
	return nil
}

func (c *NATSClient) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("nats drain failed", "error", err)
		c.conn.Close()
	}
}
