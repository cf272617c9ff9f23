// Package pubsub carries asynchronous notifications (log lines, config reloads)
// from background goroutines into the Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// LoggedEvent carries a formatted log entry.
	LoggedEvent EventType = "logged"
	// ChangedEvent signals that a watched resource changed on disk.
	ChangedEvent EventType = "changed"
	// FailedEvent signals that a background producer hit an error.
	FailedEvent EventType = "failed"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher fans a payload out to subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
