package ports

import (
	"context"

	"github.com/penpot-ir/panel/core"
)

// EventPublisher publishes session lifecycle events to notify other instances
type EventPublisher interface {
	PublishLogin(ctx context.Context, identity core.Identity) error
	PublishLogout(ctx context.Context, identity core.Identity) error
}
