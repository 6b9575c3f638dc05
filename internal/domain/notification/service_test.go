package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	calls  int
	unread int
	err    error
}

func (p *recordingPublisher) NotifyNew(ctx context.Context, userID uuid.UUID, n *NotificationResponse, unread int) error {
	p.calls++
	p.unread = unread
	return p.err
}

func TestServiceCreatePublishesUnreadCount(t *testing.T) {
	repo := &memRepo{}
	pub := &recordingPublisher{}
	svc := NewService(repo, pub)
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, KindContentHidden, "Post hidden", "first")
	require.NoError(t, err)
	n, err := svc.Create(context.Background(), userID, KindContentHidden, "Post hidden", "second")
	require.NoError(t, err)

	assert.Equal(t, userID, n.UserID)
	assert.False(t, n.IsRead)
	assert.Equal(t, 2, pub.calls)
	assert.Equal(t, 2, pub.unread)
}

func TestServiceCreateIgnoresPublishFailure(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, &recordingPublisher{err: errors.New("redis down")})

	_, err := svc.Create(context.Background(), uuid.New(), KindContentDeleted, "Post deleted", "gone")
	require.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestServiceCreateReturnsStoreError(t *testing.T) {
	repo := &memRepo{createErr: errors.New("db down")}
	pub := &recordingPublisher{}
	svc := NewService(repo, pub)

	_, err := svc.Create(context.Background(), uuid.New(), KindContentHidden, "t", "m")
	require.Error(t, err)
	assert.Zero(t, pub.calls)
}

func TestServiceMarkAsReadScopedToOwner(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil)
	owner := uuid.New()

	n, err := svc.Create(context.Background(), owner, KindContentRestored, "t", "m")
	require.NoError(t, err)

	err = svc.MarkAsRead(context.Background(), uuid.New(), n.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, svc.MarkAsRead(context.Background(), owner, n.ID))
	count, err := svc.GetUnreadCount(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestServiceMarkAllAsRead(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil)
	owner := uuid.New()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), owner, KindContentHidden, "t", "m")
		require.NoError(t, err)
	}

	updated, err := svc.MarkAllAsRead(context.Background(), owner)
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated)
}

func TestNotifierSwallowsErrors(t *testing.T) {
	failing := NewNotifier(NewService(&memRepo{createErr: errors.New("db down")}, nil))
	assert.False(t, failing.Notify(context.Background(), uuid.New(), KindContentHidden, "t", "m"))

	repo := &memRepo{}
	ok := NewNotifier(NewService(repo, nil))
	assert.True(t, ok.Notify(context.Background(), uuid.New(), KindContentHidden, "t", "m"))
	assert.Len(t, repo.items, 1)

	var nilNotifier *Notifier
	assert.False(t, nilNotifier.Notify(context.Background(), uuid.New(), KindContentHidden, "t", "m"))
}

func TestRedisPublisherPublishesToUserChannel(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	userID := uuid.New()
	sub := client.Subscribe(ctx, UserChannel(userID))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	n := &Notification{ID: uuid.New(), UserID: userID, Kind: KindContentHidden, Title: "Post hidden", Message: "m", CreatedAt: time.Now()}
	require.NoError(t, NewRedisPublisher(client).NotifyNew(ctx, userID, NotificationResponseFromEntity(n), 4))

	select {
	case msg := <-sub.Channel():
		var event RealtimeEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, "notification:new", event.Type)
		assert.Equal(t, 4, event.Data.UnreadCount)
		assert.Equal(t, n.ID, event.Data.Notification.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestCleanupJobRunOnce(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	owner := uuid.New()
	repo := &memRepo{items: []*Notification{
		{ID: uuid.New(), UserID: owner, IsRead: true, CreatedAt: now.AddDate(0, 0, -100)},
		{ID: uuid.New(), UserID: owner, IsRead: true, CreatedAt: now.AddDate(0, 0, -10)},
		{ID: uuid.New(), UserID: owner, IsRead: false, CreatedAt: now.AddDate(0, 0, -100)},
		{ID: uuid.New(), UserID: owner, IsRead: false, CreatedAt: now.AddDate(0, 0, -200)},
	}}

	job := NewCleanupJob(repo, 90)
	job.now = func() time.Time { return now }

	read, unread, err := job.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), read)
	assert.Equal(t, int64(1), unread)
	assert.Len(t, repo.items, 2)
}

func TestCleanupJobScheduleAndStop(t *testing.T) {
	job := NewCleanupJob(&memRepo{}, 0)
	assert.Equal(t, "@every 6h0m0s", job.Schedule(0))
	assert.Equal(t, "@every 30m0s", job.Schedule(30*time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cleanup job did not stop")
	}
}
