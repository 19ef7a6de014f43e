// Package kafka publishes run announcements so downstream pipeline stages
// (pathway analysis, ranking dashboards) can react to finished runs.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/RetroPath-Completion/internal/application/completion"
	"github.com/turtacn/RetroPath-Completion/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/RetroPath-Completion/pkg/errors"
)

// Config holds the Kafka connection settings.
type Config struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// runAnnouncement is the wire payload: the run counters plus the ids of the
// selected pathways, keyed by run id.
type runAnnouncement struct {
	RunID           string             `json:"run_id"`
	FinishedAt      time.Time          `json:"finished_at"`
	DurationSeconds float64            `json:"duration_seconds"`
	Summary         completion.Summary `json:"summary"`
	PathwayIDs      []string           `json:"pathway_ids"`
}

// Publisher writes run announcements to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
	logger logging.Logger
}

// NewPublisher constructs a Publisher.  The writer is lazy; broker
// connectivity is only exercised on the first publish.
func NewPublisher(cfg Config, logger logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger.Named("run-publisher")}
}

// Publish implements completion.ResultPublisher.
func (p *Publisher) Publish(ctx context.Context, result *completion.RunResult) error {
	ids := make([]string, len(result.Pathways))
	for i, pw := range result.Pathways {
		ids[i] = pw.ID
	}
	payload, err := json.Marshal(runAnnouncement{
		RunID:           result.RunID,
		FinishedAt:      time.Now().UTC(),
		DurationSeconds: result.Duration.Seconds(),
		Summary:         result.Summary,
		PathwayIDs:      ids,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "encoding run announcement")
	}

	msg := kafka.Message{
		Key:   []byte(result.RunID),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, errors.ErrCodePublishFailed, "writing run announcement")
	}

	p.logger.Info("run announcement published",
		logging.String("run_id", result.RunID),
		logging.Int("pathways", len(ids)),
	)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
