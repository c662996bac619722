// Package events publishes catalog and account events to Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

const (
	TopicUserRegistered = "user.registered"
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicOrderProceeded = "order.proceeded"
	TopicReviewAdded    = "review.added"
)

// Publisher sends an event after a successful write. Failures are logged by
// the implementation and never reach the caller.
type Publisher interface {
	Publish(topic string, data interface{})
}

// Event is the JSON message written to every topic.
type Event struct {
	ID         string      `json:"id"`
	EventType  string      `json:"event_type"`
	Data       interface{} `json:"data"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// QueueSize bounds the events waiting for the Kafka producer. Publish drops
// an event rather than wait when the queue is full.
const QueueSize = 256

// Producer hands events to a sarama AsyncProducer from a background
// goroutine, so Publish never waits on the brokers.
type Producer struct {
	producer sarama.AsyncProducer
	now      func() time.Time

	mu     sync.RWMutex
	closed bool
	queue  chan *sarama.ProducerMessage
	wg     sync.WaitGroup
}

// NewProducer wraps an already connected async producer.
func NewProducer(p sarama.AsyncProducer) *Producer {
	return newProducer(p, QueueSize)
}

func newProducer(p sarama.AsyncProducer, size int) *Producer {
	pr := &Producer{
		producer: p,
		now:      time.Now,
		queue:    make(chan *sarama.ProducerMessage, size),
	}
	pr.wg.Add(2)
	go pr.forward()
	go pr.drain()
	return pr
}

// Connect dials the brokers, retrying while Kafka is still starting up.
func Connect(brokers []string, attempts int, wait time.Duration) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	var err error
	for i := 1; i <= attempts; i++ {
		var producer sarama.AsyncProducer
		producer, err = sarama.NewAsyncProducer(brokers, config)
		if err == nil {
			log.Printf("Kafka producer connected to %v", brokers)
			return NewProducer(producer), nil
		}

		log.Printf("Waiting for Kafka... (%d/%d) Error: %v", i, attempts, err)
		if i < attempts {
			time.Sleep(wait)
		}
	}
	return nil, fmt.Errorf("connect kafka after %d attempts: %w", attempts, err)
}

func (p *Producer) Publish(topic string, data interface{}) {
	event := Event{
		ID:         uuid.NewString(),
		EventType:  topic,
		Data:       data,
		OccurredAt: p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(event.ID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
		Metadata:  event.ID,
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		log.Printf("Producer closed, dropping %s event %s", topic, event.ID)
		return
	}
	select {
	case p.queue <- msg:
	default:
		log.Printf("Kafka queue full, dropping %s event %s", topic, event.ID)
	}
}

func (p *Producer) forward() {
	defer p.wg.Done()
	for msg := range p.queue {
		p.producer.Input() <- msg
	}
	p.producer.AsyncClose()
}

// drain reports delivery results until the producer shuts both channels.
func (p *Producer) drain() {
	defer p.wg.Done()
	successes, errs := p.producer.Successes(), p.producer.Errors()
	for successes != nil || errs != nil {
		select {
		case msg, ok := <-successes:
			if !ok {
				successes = nil
				continue
			}
			log.Printf("Published %s event %v", msg.Topic, msg.Metadata)
		case perr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("Failed to send Kafka message to %s: %v", perr.Msg.Topic, perr.Err)
		}
	}
}

// Close flushes queued events and waits for the producer to shut down.
func (p *Producer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// Nop discards every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(string, interface{}) {}
