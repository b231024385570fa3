package service

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/vietanh2810/eloquence-api/internal/domain"
)

var eventSeq atomic.Uint64

// nextEventSeq numbers a registration change. It must be called while the
// settings row is locked so that numbers follow commit order.
func nextEventSeq() uint64 {
	return eventSeq.Add(1)
}

// lastEventSeq is the number of the latest change. Read under the settings
// row lock, every change numbered up to it is committed.
func lastEventSeq() uint64 {
	return eventSeq.Load()
}

// EventPublisher receives registration events after they were committed.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.RegistrationEvent) error
}

// publish hands event to every publisher. A failing publisher is logged and
// skipped: the registration it reports is already durable.
func publish(ctx context.Context, publishers []EventPublisher, event domain.RegistrationEvent) {
	for _, p := range publishers {
		if err := p.Publish(ctx, event); err != nil {
			zap.L().Error("failed to publish registration event",
				zap.String("type", string(event.Type)),
				zap.String("pool", string(event.Pool)),
				zap.Uint("registration_id", event.RegistrationID),
				zap.Uint64("seq", event.Seq),
				zap.Error(err),
			)
		}
	}
}
