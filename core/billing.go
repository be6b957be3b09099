package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionPending   SubscriptionStatus = "pending"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type CreditType string

const (
	CreditPurchase     CreditType = "purchase"
	CreditUsage        CreditType = "usage"
	CreditBonus        CreditType = "bonus"
	CreditRefund       CreditType = "refund"
	CreditSubscription CreditType = "subscription"
)

// Plan is a subscription tier offered in the catalog
type Plan struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	NameFa        string          `db:"name_fa" json:"name_fa"`
	Description   *string         `db:"description" json:"description,omitempty"`
	DescriptionFa *string         `db:"description_fa" json:"description_fa,omitempty"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Credits       int             `db:"credits" json:"credits"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	IsFeatured    bool            `db:"is_featured" json:"is_featured"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Service is an add-on a user can hold next to their plan
type Service struct {
	ID            int64           `db:"id" json:"id"`
	Name          string          `db:"name" json:"name"`
	NameFa        string          `db:"name_fa" json:"name_fa"`
	Description   *string         `db:"description" json:"description,omitempty"`
	DescriptionFa *string         `db:"description_fa" json:"description_fa,omitempty"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Credits       int             `db:"credits" json:"credits"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

type Subscription struct {
	ID        int64              `db:"id" json:"id"`
	UserID    int64              `db:"user_id" json:"user_id"`
	PlanID    int64              `db:"plan_id" json:"plan_id"`
	Status    SubscriptionStatus `db:"status" json:"status"`
	StartDate time.Time          `db:"start_date" json:"start_date"`
	EndDate   time.Time          `db:"end_date" json:"end_date"`
	AutoRenew bool               `db:"auto_renew" json:"auto_renew"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt time.Time          `db:"updated_at" json:"updated_at"`
}

type Payment struct {
	ID             int64           `db:"id" json:"id"`
	UserID         int64           `db:"user_id" json:"user_id"`
	SubscriptionID *int64          `db:"subscription_id" json:"subscription_id,omitempty"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	Currency       string          `db:"currency" json:"currency"`
	Status         PaymentStatus   `db:"status" json:"status"`
	PaymentMethod  *string         `db:"payment_method" json:"payment_method,omitempty"`
	TransactionID  *string         `db:"transaction_id" json:"transaction_id,omitempty"`
	Description    *string         `db:"description" json:"description,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// Credit is one ledger entry; Balance is the running balance after it
type Credit struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	Amount      int        `db:"amount" json:"amount"`
	Balance     int        `db:"balance" json:"balance"`
	Type        CreditType `db:"type" json:"type"`
	Description *string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type UserService struct {
	ID        int64              `db:"id" json:"id"`
	UserID    int64              `db:"user_id" json:"user_id"`
	ServiceID int64              `db:"service_id" json:"service_id"`
	Status    SubscriptionStatus `db:"status" json:"status"`
	StartDate time.Time          `db:"start_date" json:"start_date"`
	EndDate   *time.Time         `db:"end_date" json:"end_date,omitempty"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}
