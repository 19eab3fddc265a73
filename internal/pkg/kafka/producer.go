package kafka

import (
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"
	"yatube/internal/api/config"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// Publisher 发布业务事件；失败只记录日志，不影响主流程
type Publisher interface {
	Publish(ctx context.Context, event *Event)
	Close() error
}

type SaramaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher kafka 未启用时返回空实现
func NewPublisher(cfg config.KafkaConfig) (Publisher, error) {
	if !cfg.Enabled {
		log.Info("Kafka disabled, events will not be published")
		return NopPublisher{}, nil
	}
	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewSaramaPublisher(producer, cfg.Topic), nil
}

func NewSaramaPublisher(producer sarama.SyncProducer, topic string) *SaramaPublisher {
	return &SaramaPublisher{producer: producer, topic: topic}
}

func (s *SaramaPublisher) Publish(ctx context.Context, event *Event) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.ErrorContext(ctx, "failed to marshal event", "type", event.Type, "err", err)
		return
	}

	// 同一作者的事件落在同一分区，保证顺序
	key := event.AuthorID
	if key == 0 {
		key = event.ActorID
	}

	partition, offset, err := s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(key, 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.WarnContext(ctx, "failed to publish event", "type", event.Type, "err", err)
		return
	}
	log.DebugContext(ctx, "event published", "type", event.Type, "partition", partition, "offset", offset)
}

func (s *SaramaPublisher) Close() error {
	return s.producer.Close()
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) {}

func (NopPublisher) Close() error { return nil }
