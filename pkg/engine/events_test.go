package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/goflowd/flowd/pkg/channels/gochannel"
	"github.com/goflowd/flowd/pkg/eventbus"
	"github.com/goflowd/flowd/pkg/events"
	"github.com/goflowd/flowd/pkg/persistence/memory"
	"github.com/goflowd/flowd/pkg/registry"
	"github.com/goflowd/flowd/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventCollector struct {
	mu    sync.Mutex
	types []events.EventType
}

func (c *eventCollector) handler(eventType events.EventType) eventbus.EventHandler {
	return func(_ context.Context, _ any) error {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.types = append(c.types, eventType)

		return nil
	}
}

func (c *eventCollector) count(eventType events.EventType) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, seen := range c.types {
		if seen == eventType {
			n++
		}
	}

	return n
}

func TestEngine_PublishesLifecycleEvents(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)

	collector := &eventCollector{}
	for _, eventType := range []events.EventType{
		events.ProcessStartedEvent,
		events.ProcessCompletedEvent,
		events.TaskCreatedEvent,
		events.TaskAssignedEvent,
		events.TaskCompletedEvent,
		events.VariablesUpdatedEvent,
	} {
		require.NoError(t, bus.Handle(eventType, collector.handler(eventType)))
	}

	require.NoError(t, bus.Subscribe(t.Context()))

	reg := registry.NewRegistry(logger)
	for _, definition := range testutil.Definitions() {
		require.NoError(t, reg.Register(definition))
	}

	e := NewEngine(logger, reg, memory.NewPersistence(), bus)

	instance, err := e.Start(t.Context(), testutil.FileDefinitionKey, map[string]any{
		"initiator_group": "activitiTeam",
	})
	require.NoError(t, err)

	task := soleTask(t, e, instance.ID)
	_, err = e.Claim(t.Context(), task.ID, bob)
	require.NoError(t, err)

	require.NoError(t, e.SetVariables(t.Context(), instance.ID, map[string]any{"close_file": true}))

	_, err = e.Complete(t.Context(), task.ID, bob, nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return collector.count(events.ProcessStartedEvent) == 1 &&
			collector.count(events.TaskCreatedEvent) == 1 &&
			collector.count(events.TaskAssignedEvent) == 1 &&
			collector.count(events.VariablesUpdatedEvent) == 1 &&
			collector.count(events.TaskCompletedEvent) == 1 &&
			collector.count(events.ProcessCompletedEvent) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
