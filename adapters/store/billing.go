package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/penpot-ir/panel/core"
)

const (
	planColumns         = "id, name, name_fa, description, description_fa, price, credits, is_active, is_featured, created_at"
	serviceColumns      = "id, name, name_fa, description, description_fa, price, credits, is_active, created_at"
	subscriptionColumns = "id, user_id, plan_id, status, start_date, end_date, auto_renew, created_at, updated_at"
	paymentColumns      = "id, user_id, subscription_id, amount, currency, status, payment_method, transaction_id, description, created_at"
	creditColumns       = "id, user_id, amount, balance, type, description, created_at"
	userServiceColumns  = "id, user_id, service_id, status, start_date, end_date, created_at"
)

func (s *SQLStore) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, s.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return n, nil
}

func (s *SQLStore) getOne(ctx context.Context, dest interface{}, what, query string, args ...interface{}) error {
	if err := s.db.GetContext(ctx, dest, s.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ErrNotFound
		}
		return fmt.Errorf("failed to get %s: %w", what, err)
	}
	return nil
}

func (s *SQLStore) list(ctx context.Context, dest interface{}, what, query string, args ...interface{}) error {
	if err := s.db.SelectContext(ctx, dest, s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to list %s: %w", what, err)
	}
	return nil
}

// CountActiveUsers counts users allowed to sign in
func (s *SQLStore) CountActiveUsers(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM users WHERE is_active = ?", true)
}

// CountSubscriptions counts subscriptions in the given status
func (s *SQLStore) CountSubscriptions(ctx context.Context, status core.SubscriptionStatus) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM subscriptions WHERE status = ?", string(status))
}

// CountActivePlans counts plans visible in the catalog
func (s *SQLStore) CountActivePlans(ctx context.Context) (int, error) {
	return s.count(ctx, "SELECT COUNT(*) FROM plans WHERE is_active = ?", true)
}

// CompletedPaymentsSince lists completed payments created at or after since
func (s *SQLStore) CompletedPaymentsSince(ctx context.Context, since time.Time) ([]core.Payment, error) {
	payments := []core.Payment{}
	err := s.list(ctx, &payments, "payments",
		"SELECT "+paymentColumns+" FROM payments WHERE status = ? AND created_at >= ? ORDER BY created_at DESC, id DESC",
		string(core.PaymentCompleted), since.UTC())
	return payments, err
}

// ListUsers lists every user, newest first
func (s *SQLStore) ListUsers(ctx context.Context) ([]core.CredentialRecord, error) {
	users := []core.CredentialRecord{}
	err := s.list(ctx, &users, "users", "SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC")
	return users, err
}

// ListPlans lists every plan, featured first then by descending price
func (s *SQLStore) ListPlans(ctx context.Context) ([]core.Plan, error) {
	plans := []core.Plan{}
	err := s.list(ctx, &plans, "plans", "SELECT "+planColumns+" FROM plans ORDER BY is_featured DESC, price DESC, id ASC")
	return plans, err
}

// ListActivePlans lists active plans by ascending price
func (s *SQLStore) ListActivePlans(ctx context.Context) ([]core.Plan, error) {
	plans := []core.Plan{}
	err := s.list(ctx, &plans, "active plans",
		"SELECT "+planColumns+" FROM plans WHERE is_active = ? ORDER BY price ASC, id ASC", true)
	return plans, err
}

// FindPlan returns the plan with the given id
func (s *SQLStore) FindPlan(ctx context.Context, id int64) (*core.Plan, error) {
	var plan core.Plan
	if err := s.getOne(ctx, &plan, "plan", "SELECT "+planColumns+" FROM plans WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListServices lists every add-on service
func (s *SQLStore) ListServices(ctx context.Context) ([]core.Service, error) {
	services := []core.Service{}
	err := s.list(ctx, &services, "services", "SELECT "+serviceColumns+" FROM services ORDER BY id ASC")
	return services, err
}

// ListActiveServices lists add-on services that can be purchased
func (s *SQLStore) ListActiveServices(ctx context.Context) ([]core.Service, error) {
	services := []core.Service{}
	err := s.list(ctx, &services, "active services",
		"SELECT "+serviceColumns+" FROM services WHERE is_active = ? ORDER BY id ASC", true)
	return services, err
}

// ListActiveUserServices lists the services a user currently holds
func (s *SQLStore) ListActiveUserServices(ctx context.Context, userID int64) ([]core.UserService, error) {
	held := []core.UserService{}
	err := s.list(ctx, &held, "user services",
		"SELECT "+userServiceColumns+" FROM user_services WHERE user_id = ? AND status = ? ORDER BY start_date DESC, id DESC",
		userID, string(core.SubscriptionActive))
	return held, err
}

// LatestSubscription returns the most recently created subscription of a user
func (s *SQLStore) LatestSubscription(ctx context.Context, userID int64) (*core.Subscription, error) {
	var sub core.Subscription
	err := s.getOne(ctx, &sub, "subscription",
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1", userID)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// LatestCredit returns the most recent credit ledger entry of a user
func (s *SQLStore) LatestCredit(ctx context.Context, userID int64) (*core.Credit, error) {
	var credit core.Credit
	err := s.getOne(ctx, &credit, "credit",
		"SELECT "+creditColumns+" FROM credits WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT 1", userID)
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

// ListPayments lists the newest payments across all users
func (s *SQLStore) ListPayments(ctx context.Context, limit int) ([]core.Payment, error) {
	payments := []core.Payment{}
	err := s.list(ctx, &payments, "payments",
		"SELECT "+paymentColumns+" FROM payments ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	return payments, err
}

// ListUserPayments lists a user's payments, newest first
func (s *SQLStore) ListUserPayments(ctx context.Context, userID int64) ([]core.Payment, error) {
	payments := []core.Payment{}
	err := s.list(ctx, &payments, "user payments",
		"SELECT "+paymentColumns+" FROM payments WHERE user_id = ? ORDER BY created_at DESC, id DESC", userID)
	return payments, err
}
