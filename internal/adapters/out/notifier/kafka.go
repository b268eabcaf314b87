// Package notifier delivers domain notifications to the notification service. The Kafka adapter
// publishes one JSON message per recipient; the log adapter stands in when no broker is configured.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"parcel/internal/core/domain/model/notification"

	"github.com/IBM/sarama"
)

// Message is the wire shape published to the notification topic.
type Message struct {
	RecipientID int64     `json:"recipientId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	RelatedType string    `json:"relatedType"`
	RelatedID   int64     `json:"relatedId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func messageFrom(n notification.Notification, now time.Time) Message {
	return Message{
		RecipientID: n.RecipientID.Int64(),
		Title:       n.Title,
		Body:        n.Body,
		Category:    string(n.Category),
		RelatedType: string(n.RelatedType),
		RelatedID:   n.RelatedID.Int64(),
		CreatedAt:   now,
	}
}

// NewSyncProducer connects a synchronous producer that waits for all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	return sarama.NewSyncProducer(brokers, cfg)
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(hosts string) []string {
	var brokers []string
	for _, h := range strings.Split(hosts, ",") {
		if h = strings.TrimSpace(h); h != "" {
			brokers = append(brokers, h)
		}
	}
	return brokers
}

// KafkaNotifier publishes notifications keyed by recipient so one account's messages stay ordered.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
	logger   *slog.Logger
}

func NewKafkaNotifier(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		now:      time.Now,
		logger:   logger.With("component", "kafka_notifier"),
	}
}

// Notify never fails the caller: encoding and broker errors are logged and the message dropped.
func (k *KafkaNotifier) Notify(ctx context.Context, n notification.Notification) {
	payload, err := json.Marshal(messageFrom(n, k.now()))
	if err != nil {
		k.logger.ErrorContext(ctx, "encode notification", "recipient_id", n.RecipientID, "error", err)
		return
	}

	partition, offset, err := k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(n.RecipientID.String()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		k.logger.ErrorContext(ctx, "publish notification", "recipient_id", n.RecipientID, "title", n.Title, "error", err)
		return
	}

	k.logger.DebugContext(ctx, "notification published",
		"recipient_id", n.RecipientID, "partition", partition, "offset", offset)
}

func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
