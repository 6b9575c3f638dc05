package notification

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const userChannelPrefix = "notifications:user:"

// RealtimePublisher publishes in-app notification realtime events.
type RealtimePublisher interface {
	NotifyNew(ctx context.Context, userID uuid.UUID, notification *NotificationResponse, unreadCount int) error
}

// UserChannel returns the pub/sub channel for a user's live notifications
func UserChannel(userID uuid.UUID) string {
	return userChannelPrefix + userID.String()
}

// RealtimeEvent is the payload published for each new notification
type RealtimeEvent struct {
	Type string            `json:"type"`
	Data RealtimeEventData `json:"data"`
}

// RealtimeEventData carries the notification and the fresh unread counter
type RealtimeEventData struct {
	Notification *NotificationResponse `json:"notification"`
	UnreadCount  int                   `json:"unread_count"`
}

// RedisPublisher publishes notification:new events over Redis pub/sub
// for whichever gateway holds the user's live connection.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a Redis-backed realtime publisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) NotifyNew(ctx context.Context, userID uuid.UUID, notification *NotificationResponse, unreadCount int) error {
	if p == nil || p.client == nil {
		return nil
	}

	payload, err := json.Marshal(RealtimeEvent{
		Type: "notification:new",
		Data: RealtimeEventData{Notification: notification, UnreadCount: unreadCount},
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, UserChannel(userID), payload).Err()
}
