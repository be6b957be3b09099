package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/alicebob/miniredis/v2"
	"github.com/penpot-ir/panel/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var admin = core.Identity{ID: 1, Email: "admin@penpot.ir", Name: "مدیر سیستم", Role: core.RoleAdmin}

func TestWatermillPublisher_GoChannel(t *testing.T) {
	pubSub := NewChannelPubSub(NewZapLogger(zap.NewNop()))
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logins, err := pubSub.Subscribe(ctx, LoginTopic)
	require.NoError(t, err)
	logouts, err := pubSub.Subscribe(ctx, LogoutTopic)
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return fixed }

	require.NoError(t, publisher.PublishLogin(ctx, admin))
	require.NoError(t, publisher.PublishLogout(ctx, admin))

	for _, ch := range []<-chan *message.Message{logins, logouts} {
		select {
		case msg := <-ch:
			var event SessionEvent
			require.NoError(t, json.Unmarshal(msg.Payload, &event))
			assert.Equal(t, SessionEvent{UserID: 1, Email: "admin@penpot.ir", Role: core.RoleAdmin, OccurredAt: fixed}, event)
			assert.NotEmpty(t, msg.UUID)
			msg.Ack()
		case <-ctx.Done():
			t.Fatal("timed out waiting for session event")
		}
	}
}

func TestWatermillPublisher_RedisStream(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = client.Close() }()

	backend, err := NewRedisPublisher(client, NewZapLogger(zap.NewNop()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, NewWatermillPublisher(backend).PublishLogout(ctx, admin))

	entries, err := client.XRange(ctx, LogoutTopic, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	found := false
	for _, v := range entries[0].Values {
		if s, ok := v.(string); ok && strings.Contains(s, `"email":"admin@penpot.ir"`) {
			found = true
		}
	}
	assert.True(t, found, "stream entry should carry the event payload")
}

type failingPublisher struct{}

func (failingPublisher) Publish(string, ...*message.Message) error { return errors.New("broker down") }
func (failingPublisher) Close() error                              { return nil }

func TestWatermillPublisher_PropagatesFailure(t *testing.T) {
	err := NewWatermillPublisher(failingPublisher{}).PublishLogin(context.Background(), admin)
	assert.ErrorContains(t, err, "broker down")
}

func TestNewRedisClient(t *testing.T) {
	client, err := NewRedisClient("redis://localhost:6379/2")
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	assert.Equal(t, 2, client.Options().DB)

	_, err = NewRedisClient("://bad")
	assert.Error(t, err)
}
