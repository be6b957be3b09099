package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/penpot-ir/panel/core"
)

const (
	LoginTopic  = "panel.session.login"
	LogoutTopic = "panel.session.logout"
)

// SessionEvent is published whenever a session is established or destroyed
type SessionEvent struct {
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Role       core.Role `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
	now       func() time.Time
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		now:       time.Now,
	}
}

// PublishLogin publishes a login event
func (p *WatermillPublisher) PublishLogin(ctx context.Context, identity core.Identity) error {
	return p.publish(ctx, LoginTopic, identity)
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, identity core.Identity) error {
	return p.publish(ctx, LogoutTopic, identity)
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, identity core.Identity) error {
	event := SessionEvent{
		UserID:     identity.ID,
		Email:      identity.Email,
		Role:       identity.Role,
		OccurredAt: p.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) PublishLogin(context.Context, core.Identity) error  { return nil }
func (NopPublisher) PublishLogout(context.Context, core.Identity) error { return nil }
