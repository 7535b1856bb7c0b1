package writer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/agentstation/pkgsync/pkg/constants"
	"github.com/agentstation/pkgsync/pkg/errors"
	"github.com/agentstation/pkgsync/pkg/logging"
	"github.com/agentstation/pkgsync/pkg/reconcile"
)

// Change-set sections published as separate messages.
const (
	SectionPackages     = "packages"
	SectionURLs         = "urls"
	SectionLinks        = "links"
	SectionDependencies = "dependencies"
)

// messageWriter is the subset of *kafka.Writer the KafkaWriter uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Envelope is the value of every published message.
type Envelope struct {
	RunID   string `json:"run_id"`
	Source  string `json:"source"`
	Section string `json:"section"`
	Payload any    `json:"payload"`
}

// KafkaWriter publishes one message per non-empty change-set section,
// keyed by source so a source's sections land on one partition in order.
type KafkaWriter struct {
	topic string
	w     messageWriter
}

var _ Writer = (*KafkaWriter)(nil)

// NewKafkaWriter creates a writer publishing to topic on the given brokers.
func NewKafkaWriter(brokers []string, topic string) (*KafkaWriter, error) {
	var addrs []string
	for _, b := range brokers {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil, errors.NewValidationError("brokers", brokers, "at least one kafka broker is required")
	}
	if topic == "" {
		topic = constants.DefaultKafkaTopic
	}

	return newKafkaWriter(&kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Balancer:     &kafka.Hash{},
		WriteTimeout: constants.KafkaWriteTimeout,
	}, topic), nil
}

func newKafkaWriter(w messageWriter, topic string) *KafkaWriter {
	return &KafkaWriter{topic: topic, w: w}
}

// Topic returns the destination topic.
func (k *KafkaWriter) Topic() string {
	return k.topic
}

// Write implements the Writer interface.
func (k *KafkaWriter) Write(ctx context.Context, result *reconcile.Result) error {
	if result == nil || result.Changeset == nil {
		return nil
	}

	msgs, err := k.messages(result)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		logging.FromContext(ctx).Debug().Str("topic", k.topic).Msg("Empty change-set, nothing published")
		return nil
	}

	if err := k.w.WriteMessages(ctx, msgs...); err != nil {
		return errors.WrapResource("publish", "topic", k.topic, err)
	}

	logging.FromContext(ctx).Info().
		Str("topic", k.topic).
		Int("messages", len(msgs)).
		Msg("Change-set published")
	return nil
}

// Close flushes and closes the underlying writer.
func (k *KafkaWriter) Close() error {
	return k.w.Close()
}

func (k *KafkaWriter) messages(result *reconcile.Result) ([]kafka.Message, error) {
	cs := result.Changeset
	sections := []struct {
		name    string
		changed bool
		payload any
	}{
		{SectionPackages, cs.Packages.HasChanges(), cs.Packages},
		{SectionURLs, cs.URLs.HasChanges(), cs.URLs},
		{SectionLinks, cs.Links.HasChanges(), cs.Links},
		{SectionDependencies, cs.Dependencies.HasChanges(), cs.Dependencies},
	}

	var msgs []kafka.Message
	for _, s := range sections {
		if !s.changed {
			continue
		}
		value, err := json.Marshal(Envelope{
			RunID:   result.Metadata.RunID,
			Source:  result.Source,
			Section: s.name,
			Payload: s.payload,
		})
		if err != nil {
			return nil, errors.WrapParse("json", s.name, err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: k.topic,
			Key:   []byte(result.Source),
			Value: value,
			Headers: []kafka.Header{
				{Key: "section", Value: []byte(s.name)},
			},
		})
	}
	return msgs, nil
}
