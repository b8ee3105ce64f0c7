package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process pub/sub queue with retry, used for
// work that stays inside the server (score recomputation). Cross-
// process delivery jobs go over RabbitMQ instead.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// ScoreRecomputeTopic carries lead IDs whose engagement score needs a
// refresh (after an interaction is recorded, or from the daily sweep).
const ScoreRecomputeTopic = "score_recompute"

// ScoreRecomputer is what the subscriber needs from the score service.
type ScoreRecomputer interface {
	RecomputeLeadScore(leadID int, now time.Time) (int, error)
}

func StartScoreRecomputeSubscriber(q Queue, scores ScoreRecomputer) {
	go func() {
		err := q.Subscribe(ScoreRecomputeTopic, func(payload any) error {
			leadID, ok := payload.(int)
			if !ok {
				log.Println("⚠️ Invalid payload type, expected int")
				return nil // no retry for junk payloads
			}

			score, err := scores.RecomputeLeadScore(leadID, time.Now())
			if err != nil {
				log.Println("⚠️ Failed to recompute score for lead", leadID, ":", err)
				return err // triggers retry in queue
			}

			log.Println("✅ Recomputed score for lead", leadID, "->", score)
			return nil
		})

		if err != nil {
			log.Println("⚠️ Failed to start subscriber for", ScoreRecomputeTopic, ":", err)
		}
	}()
}
