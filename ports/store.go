package ports

import (
	"context"
	"time"

	"github.com/penpot-ir/panel/core"
)

// CredentialStore looks up users by their login email.
// FindByEmail returns core.ErrNotFound when no record matches exactly.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (*core.CredentialRecord, error)
}

// BillingReader serves the read-only queries behind the admin and user dashboards
type BillingReader interface {
	CountActiveUsers(ctx context.Context) (int, error)
	CountSubscriptions(ctx context.Context, status core.SubscriptionStatus) (int, error)
	CountActivePlans(ctx context.Context) (int, error)
	CompletedPaymentsSince(ctx context.Context, since time.Time) ([]core.Payment, error)

	ListUsers(ctx context.Context) ([]core.CredentialRecord, error)
	FindUser(ctx context.Context, id int64) (*core.CredentialRecord, error)

	ListPlans(ctx context.Context) ([]core.Plan, error)
	ListActivePlans(ctx context.Context) ([]core.Plan, error)
	FindPlan(ctx context.Context, id int64) (*core.Plan, error)

	ListServices(ctx context.Context) ([]core.Service, error)
	ListActiveServices(ctx context.Context) ([]core.Service, error)
	ListActiveUserServices(ctx context.Context, userID int64) ([]core.UserService, error)

	LatestSubscription(ctx context.Context, userID int64) (*core.Subscription, error)
	LatestCredit(ctx context.Context, userID int64) (*core.Credit, error)

	ListPayments(ctx context.Context, limit int) ([]core.Payment, error)
	ListUserPayments(ctx context.Context, userID int64) ([]core.Payment, error)
}
