// Package cmd provides the factories binaries use to assemble the runtime.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/goflowd/flowd/pkg/channels/gochannel"
	"github.com/goflowd/flowd/pkg/channels/kafka"
	"github.com/goflowd/flowd/pkg/eventbus"
)

// NewEventBus creates the lifecycle event bus for the given provider.
// "gochannel" keeps events in-process; "kafka" publishes them to the brokers
// named by KAFKA_BROKERS.
func NewEventBus(provider string, logger *slog.Logger) eventbus.EventBus {
	switch provider {
	case "kafka":
		pub, sub, err := kafka.CreateChannel(watermill.NewSlogLogger(logger), "flowd")
		if err != nil {
			panic(fmt.Errorf("failed to create Kafka pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	default:
		pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
		if err != nil {
			panic(fmt.Errorf("failed to create in-process pub/sub: %w", err))
		}

		return eventbus.NewWatermillEventBus(pub, sub)
	}
}
