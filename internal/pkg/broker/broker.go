package broker

import (
	"context"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/pkg/sse"
)

// EventScan is the SSE event name carrying one LiveRecord.
const EventScan = "scan"

// Broker delivers recorded scans to the SSE hub of every API instance.
type Broker interface {
	Publish(ctx context.Context, record attendance.LiveRecord) error
	// Run forwards remote events to the local hub until ctx is done.
	Run(ctx context.Context) error
	Close() error
}

// Local publishes straight into the in-process hub. Used when Redis is not configured.
type Local struct {
	hub *sse.Hub
}

func NewLocal(hub *sse.Hub) *Local {
	return &Local{hub: hub}
}

func (b *Local) Publish(ctx context.Context, record attendance.LiveRecord) error {
	b.hub.Publish(scanEvent(record))
	return nil
}

func (b *Local) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (b *Local) Close() error { return nil }

func scanEvent(record attendance.LiveRecord) sse.Event {
	return sse.Event{
		Topic: sse.TopicAttendanceScans,
		Event: EventScan,
		Data:  record,
	}
}
