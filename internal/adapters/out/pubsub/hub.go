// Package pubsub is the in-process side of dashboard notifications: a topic
// hub that websocket connections subscribe to, and a fan-out publisher that
// feeds several transports at once.
package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// DefaultBuffer is the per-subscriber queue length used when none is given.
const DefaultBuffer = 32

// Message is a payload delivered on a topic, already JSON-encoded.
type Message struct {
	Topic string
	Data  []byte
}

// Hub delivers published payloads to the subscribers of a topic. Delivery
// never blocks the publisher: a subscriber whose queue is full misses the
// message.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	buffer int
	logger *slog.Logger
}

// NewHub creates a hub whose subscriptions queue up to buffer messages.
// buffer <= 0 means DefaultBuffer.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		topics: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger.With("component", "pubsub_hub"),
	}
}

// Subscription receives the messages of its topics until Close is called.
type Subscription struct {
	hub    *Hub
	topics []string
	ch     chan Message
	once   sync.Once
}

// C is closed after Close.
func (s *Subscription) C() <-chan Message {
	return s.ch
}

// Close detaches the subscription from the hub. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()

		for _, topic := range s.topics {
			subs := s.hub.topics[topic]
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.topics, topic)
			}
		}
		close(s.ch)
	})
}

// Subscribe registers a subscription for every given topic.
func (h *Hub) Subscribe(topics ...string) *Subscription {
	sub := &Subscription{
		hub:    h,
		topics: append([]string(nil), topics...),
		ch:     make(chan Message, h.buffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		subs, ok := h.topics[topic]
		if !ok {
			subs = make(map[*Subscription]struct{})
			h.topics[topic] = subs
		}
		subs[sub] = struct{}{}
	}
	return sub
}

// Subscribers returns the number of subscriptions on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Publish implements ports.Publisher. It encodes payload once and offers it
// to every current subscriber of topic.
func (h *Hub) Publish(ctx context.Context, topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := Message{Topic: topic, Data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[topic] {
		select {
		case sub.ch <- msg:
		default:
			h.logger.DebugContext(ctx, "Subscriber queue full, message dropped", "topic", topic)
		}
	}
	return nil
}
