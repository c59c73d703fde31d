package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rovicpogi/Stoninonew/internal/domain/attendance"
	"github.com/rovicpogi/Stoninonew/internal/pkg/sse"
)

const DefaultChannel = "attendance:scans"

// Redis fans scans out through Redis pub/sub so every API instance sees
// scans ingested by any other. Delivery is at-most-once; clients polling the
// live feed pick up anything missed.
type Redis struct {
	client  *redis.Client
	hub     *sse.Hub
	channel string
}

func NewRedis(client *redis.Client, hub *sse.Hub, channel string) *Redis {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Redis{client: client, hub: hub, channel: channel}
}

// NewRedisClient connects with short timeouts.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

func (b *Redis) Publish(ctx context.Context, record attendance.LiveRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal scan: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish scan: %w", err)
	}
	return nil
}

func (b *Redis) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	slog.Info("Scan broker subscribed", "channel", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var record attendance.LiveRecord
			if err := json.Unmarshal([]byte(msg.Payload), &record); err != nil {
				slog.Warn("Dropping malformed scan event", "error", err)
				continue
			}
			b.hub.Publish(scanEvent(record))
		}
	}
}

func (b *Redis) Close() error {
	return b.client.Close()
}
