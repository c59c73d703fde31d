package broker

import (
	"context"
	"testing"
	"time"

	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PublishReachesSubscribers(t *testing.T) {
	hub := sse.NewHub()
	events, cleanup := hub.Subscribe(sse.TopicAttendanceScans)
	defer cleanup()

	b := NewLocal(hub)
	rec := attendance.LiveRecord{ID: "a-1", StudentName: "Juan Dela Cruz", ScanTime: time.Now()}
	require.NoError(t, b.Publish(context.Background(), rec))

	select {
	case ev := <-events:
		assert.Equal(t, EventScan, ev.Event)
		assert.Equal(t, rec, ev.Data)
	case <-time.After(time.Second):
		t.Fatal("scan was not delivered")
	}
}

func TestLocal_RunStopsWithContext(t *testing.T) {
	b := NewLocal(sse.NewHub())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
