package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)

	delivered := broker.Publish(ChangedEvent, "config.yaml")
	require.Equal(t, 1, delivered)

	select {
	case event := <-ch:
		require.Equal(t, "config.yaml", event.Payload)
		require.Equal(t, ChangedEvent, event.Type)
		require.False(t, event.Timestamp.IsZero())
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()
	chans := []<-chan Event[int]{
		broker.Subscribe(ctx),
		broker.Subscribe(ctx),
		broker.Subscribe(ctx),
	}
	require.Equal(t, 3, broker.SubscriberCount())

	require.Equal(t, 3, broker.Publish(LoggedEvent, 42))

	for i, ch := range chans {
		select {
		case event := <-ch:
			require.Equal(t, 42, event.Payload, "subscriber %d", i)
		case <-time.After(100 * time.Millisecond):
			require.Fail(t, "timeout waiting for event", "subscriber %d", i)
		}
	}
}

func TestBroker_ContextCancellationClosesChannel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "channel should be closed after cancel")
	case <-time.After(200 * time.Millisecond):
		require.Fail(t, "channel was not closed")
	}
	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 },
		200*time.Millisecond, 10*time.Millisecond)
}

func TestBroker_FullSubscriberDropsEvents(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1)
	defer broker.Close()

	_ = broker.Subscribe(context.Background())

	require.Equal(t, 1, broker.Publish(LoggedEvent, 1))
	require.Equal(t, 0, broker.Publish(LoggedEvent, 2))
	require.Equal(t, 1, broker.Dropped())
}

func TestBroker_PublishAfterClose(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())
	broker.Close()
	broker.Close()

	require.Equal(t, 0, broker.Publish(FailedEvent, "late"))
	_, ok := <-ch
	require.False(t, ok)

	closed := broker.Subscribe(context.Background())
	_, ok = <-closed
	require.False(t, ok, "subscribing to a closed broker yields a closed channel")
}
