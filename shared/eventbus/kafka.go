package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"identity-platform/shared/id"
)

// KafkaProducer publishes user events through a synchronous, idempotent
// sarama producer. Publish returns once the brokers have acknowledged the
// message.
type KafkaProducer struct {
	producer sarama.SyncProducer
}

func NewKafkaProducer(brokers []string) (*KafkaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return &KafkaProducer{producer: producer}, nil
}

func (p *KafkaProducer) Publish(ctx context.Context, topic string, event UserEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(id.GenerateEventID())},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}

	log.Printf("[BUS] %s for user %d sent to partition %d at offset %d",
		event.EventType, event.UserID, partition, offset)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.producer.Close()
}

// KafkaConsumer runs a consumer group over one topic and feeds each message
// to the handler. Offsets are marked whether or not the handler succeeds:
// a poison event must never wedge its partition.
type KafkaConsumer struct {
	consumer sarama.ConsumerGroup
	topic    string
	handler  Handler
}

func NewKafkaConsumer(brokers []string, groupID, topic string, handler Handler) (*KafkaConsumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Group.Session.Timeout = 20 * time.Second
	config.Consumer.Group.Heartbeat.Interval = 6 * time.Second
	config.Consumer.MaxProcessingTime = 30 * time.Second

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &KafkaConsumer{consumer: consumer, topic: topic, handler: handler}, nil
}

func (c *KafkaConsumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}
	for {
		if err := c.consumer.Consume(ctx, []string{c.topic}, handler); err != nil {
			log.Printf("[BUS] Error from consumer: %v", err)
		}
		if ctx.Err() != nil {
			log.Println("[BUS] Context cancelled, shutting down consumer")
			return nil
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.consumer.Close()
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *KafkaConsumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Println("[BUS] Consumer group session started")
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Println("[BUS] Consumer group session ended")
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event UserEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[BUS] Dropping malformed event at offset %d: %v", message.Offset, err)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.consumer.handler(session.Context(), event); err != nil {
			log.Printf("[BUS] Dropping event %s for user %d after handler error: %v",
				event.EventType, event.UserID, err)
		}
		session.MarkMessage(message, "")
	}
	return nil
}
