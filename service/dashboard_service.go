package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"github.com/shopspring/decimal"
)

const (
	recentPaymentsLimit = 50
	unknownPayer        = "Unknown"
)

// AdminStats summarises the panel for the admin landing page
type AdminStats struct {
	ActiveUsers         int             `json:"active_users"`
	ActiveSubscriptions int             `json:"active_subscriptions"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	ActivePlans         int             `json:"active_plans"`
}

// UserRow is a user listing entry with their latest subscription
type UserRow struct {
	ID                 int64                    `json:"id"`
	Email              string                   `json:"email"`
	Name               string                   `json:"name"`
	Role               core.Role                `json:"role"`
	IsActive           bool                     `json:"is_active"`
	CreatedAt          time.Time                `json:"created_at"`
	PlanName           *string                  `json:"plan_name,omitempty"`
	SubscriptionStatus *core.SubscriptionStatus `json:"subscription_status,omitempty"`
}

// PaymentRow is a payment listing entry with the payer's name
type PaymentRow struct {
	core.Payment
	UserName string `json:"user_name"`
}

// UserOverview is the end-user landing page content
type UserOverview struct {
	Plan             *core.Plan         `json:"plan"`
	Subscription     *core.Subscription `json:"subscription"`
	CreditBalance    int                `json:"credit_balance"`
	DaysUntilRenewal *int               `json:"days_until_renewal"`
}

// PlanChoice lists the purchasable plans next to the caller's current one
type PlanChoice struct {
	Plans         []core.Plan        `json:"plans"`
	CurrentPlanID *int64             `json:"current_plan_id"`
	Subscription  *core.Subscription `json:"subscription"`
}

// ServiceChoice lists the caller's active services and the purchasable ones
type ServiceChoice struct {
	Active    []core.UserService `json:"active"`
	Available []core.Service     `json:"available"`
}

// DashboardService composes read-only views for the admin and user pages
type DashboardService struct {
	billing ports.BillingReader
	now     func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(billing ports.BillingReader) *DashboardService {
	return &DashboardService{
		billing: billing,
		now:     time.Now,
	}
}

// AdminStats counts active users, subscriptions and plans and sums this month's completed revenue
func (s *DashboardService) AdminStats(ctx context.Context) (AdminStats, error) {
	var stats AdminStats
	var err error

	if stats.ActiveUsers, err = s.billing.CountActiveUsers(ctx); err != nil {
		return AdminStats{}, err
	}
	if stats.ActiveSubscriptions, err = s.billing.CountSubscriptions(ctx, core.SubscriptionActive); err != nil {
		return AdminStats{}, err
	}
	if stats.ActivePlans, err = s.billing.CountActivePlans(ctx); err != nil {
		return AdminStats{}, err
	}

	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	payments, err := s.billing.CompletedPaymentsSince(ctx, monthStart)
	if err != nil {
		return AdminStats{}, err
	}

	stats.MonthlyRevenue = decimal.Zero
	for _, p := range payments {
		stats.MonthlyRevenue = stats.MonthlyRevenue.Add(p.Amount)
	}

	return stats, nil
}

// Users lists all users newest first with their latest subscription
func (s *DashboardService) Users(ctx context.Context) ([]UserRow, error) {
	users, err := s.billing.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	plans := map[int64]*core.Plan{}
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		row := UserRow{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			IsActive:  u.IsActive,
			CreatedAt: u.CreatedAt,
		}

		sub, err := s.latestSubscription(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			status := sub.Status
			row.SubscriptionStatus = &status

			plan, cached := plans[sub.PlanID]
			if !cached {
				if plan, err = s.findPlan(ctx, sub.PlanID); err != nil {
					return nil, err
				}
				plans[sub.PlanID] = plan
			}
			if plan != nil {
				name := plan.NameFa
				row.PlanName = &name
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// Plans lists every plan, featured first
func (s *DashboardService) Plans(ctx context.Context) ([]core.Plan, error) {
	return s.billing.ListPlans(ctx)
}

// Services lists every add-on service
func (s *DashboardService) Services(ctx context.Context) ([]core.Service, error) {
	return s.billing.ListServices(ctx)
}

// Payments lists the most recent payments with payer names
func (s *DashboardService) Payments(ctx context.Context) ([]PaymentRow, error) {
	payments, err := s.billing.ListPayments(ctx, recentPaymentsLimit)
	if err != nil {
		return nil, err
	}

	names := map[int64]string{}
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		name, cached := names[p.UserID]
		if !cached {
			name = unknownPayer
			user, err := s.billing.FindUser(ctx, p.UserID)
			switch {
			case err == nil:
				name = user.Name
			case !errors.Is(err, core.ErrNotFound):
				return nil, err
			}
			names[p.UserID] = name
		}
		rows = append(rows, PaymentRow{Payment: p, UserName: name})
	}

	return rows, nil
}

// UserOverview returns the current plan, credit balance and renewal countdown of userID
func (s *DashboardService) UserOverview(ctx context.Context, userID int64) (UserOverview, error) {
	var overview UserOverview

	sub, err := s.latestSubscription(ctx, userID)
	if err != nil {
		return UserOverview{}, err
	}
	overview.Subscription = sub

	if sub != nil {
		if sub.Status == core.SubscriptionActive {
			if overview.Plan, err = s.findPlan(ctx, sub.PlanID); err != nil {
				return UserOverview{}, err
			}
		}
		days := daysUntil(s.now(), sub.EndDate)
		overview.DaysUntilRenewal = &days
	}

	credit, err := s.billing.LatestCredit(ctx, userID)
	switch {
	case err == nil:
		overview.CreditBalance = credit.Balance
	case !errors.Is(err, core.ErrNotFound):
		return UserOverview{}, err
	}

	return overview, nil
}

// UserPlans returns the active plans and which one userID currently holds
func (s *DashboardService) UserPlans(ctx context.Context, userID int64) (PlanChoice, error) {
	plans, err := s.billing.ListActivePlans(ctx)
	if err != nil {
		return PlanChoice{}, err
	}

	sub, err := s.latestSubscription(ctx, userID)
	if err != nil {
		return PlanChoice{}, err
	}

	choice := PlanChoice{Plans: plans, Subscription: sub}
	if sub != nil && sub.Status == core.SubscriptionActive {
		planID := sub.PlanID
		choice.CurrentPlanID = &planID
	}

	return choice, nil
}

// UserPayments lists the payments of userID, newest first
func (s *DashboardService) UserPayments(ctx context.Context, userID int64) ([]core.Payment, error) {
	return s.billing.ListUserPayments(ctx, userID)
}

// UserServices returns the services userID holds and those available to buy
func (s *DashboardService) UserServices(ctx context.Context, userID int64) (ServiceChoice, error) {
	held, err := s.billing.ListActiveUserServices(ctx, userID)
	if err != nil {
		return ServiceChoice{}, err
	}

	available, err := s.billing.ListActiveServices(ctx)
	if err != nil {
		return ServiceChoice{}, err
	}

	return ServiceChoice{Active: held, Available: available}, nil
}

func (s *DashboardService) latestSubscription(ctx context.Context, userID int64) (*core.Subscription, error) {
	sub, err := s.billing.LatestSubscription(ctx, userID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	return sub, err
}

func (s *DashboardService) findPlan(ctx context.Context, planID int64) (*core.Plan, error) {
	plan, err := s.billing.FindPlan(ctx, planID)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	return plan, err
}

// daysUntil rounds the remaining time up to whole days; past dates give zero or less.
func daysUntil(now, end time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}
