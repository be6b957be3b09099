package store

import (
	"context"
	"fmt"
	"time"

	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"github.com/shopspring/decimal"
)

type seedUser struct {
	email    string
	password string
	name     string
	role     core.Role
}

var seedUsers = []seedUser{
	{email: "admin@penpot.ir", password: "admin123", name: "مدیر سیستم", role: core.RoleAdmin},
	{email: "user@penpot.ir", password: "user123", name: "کاربر تست", role: core.RoleUser},
}

func strPtr(s string) *string { return &s }

var seedPlans = []core.Plan{
	{Name: "Free", NameFa: "رایگان", Description: strPtr("Free plan for testing"), DescriptionFa: strPtr("پلن رایگان برای تست"),
		Price: decimal.Zero, Credits: 1, IsActive: true},
	{Name: "Basic", NameFa: "پایه", Description: strPtr("Basic plan for individuals"), DescriptionFa: strPtr("پلن پایه برای افراد"),
		Price: decimal.NewFromInt(99000), Credits: 5, IsActive: true},
	{Name: "Pro", NameFa: "حرفه‌ای", Description: strPtr("Pro plan for teams"), DescriptionFa: strPtr("پلن حرفه‌ای برای تیم‌ها"),
		Price: decimal.NewFromInt(299000), Credits: 20, IsActive: true, IsFeatured: true},
	{Name: "Enterprise", NameFa: "سازمانی", Description: strPtr("Enterprise plan for large teams"), DescriptionFa: strPtr("پلن سازمانی برای تیم‌های بزرگ"),
		Price: decimal.NewFromInt(990000), Credits: 100, IsActive: true},
}

var seedServices = []core.Service{
	{Name: "Extra Projects", NameFa: "پروژه اضافی", Description: strPtr("Additional project credits"), DescriptionFa: strPtr("اعتبار پروژه اضافی"),
		Price: decimal.NewFromInt(20000), Credits: 1, IsActive: true},
	{Name: "Priority Support", NameFa: "پشتیبانی اولویت‌دار", Description: strPtr("Get priority support"), DescriptionFa: strPtr("دریافت پشتیبانی با اولویت بالا"),
		Price: decimal.NewFromInt(50000), Credits: 0, IsActive: true},
	{Name: "Extra Storage", NameFa: "فضای ابری اضافی", Description: strPtr("Additional cloud storage"), DescriptionFa: strPtr("فضای ابری اضافی"),
		Price: decimal.NewFromInt(30000), Credits: 5, IsActive: true},
}

// Seed populates an empty database with the demo accounts, plans and services.
// It reports false without touching anything when users already exist.
func (s *SQLStore) Seed(ctx context.Context, hasher ports.PasswordHasher) (bool, error) {
	existing, err := s.count(ctx, "SELECT COUNT(*) FROM users")
	if err != nil {
		return false, err
	}
	if existing > 0 {
		return false, nil
	}

	// Hash outside the transaction; bcrypt is slow and sqlite holds a single connection.
	records := make([]core.CredentialRecord, 0, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := hasher.Hash(u.password)
		if err != nil {
			return false, err
		}
		records = append(records, core.CredentialRecord{
			Email:        u.email,
			PasswordHash: hash,
			Name:         u.name,
			Role:         u.role,
			IsActive:     true,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for i := range records {
		if err := insertUser(ctx, tx, &records[i]); err != nil {
			return false, err
		}
	}

	now := time.Now().UTC().Truncate(time.Second)

	planQuery := tx.Rebind(`INSERT INTO plans (name, name_fa, description, description_fa, price, credits, is_active, is_featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, p := range seedPlans {
		if _, err := tx.ExecContext(ctx, planQuery,
			p.Name, p.NameFa, p.Description, p.DescriptionFa, p.Price, p.Credits, p.IsActive, p.IsFeatured, now); err != nil {
			return false, fmt.Errorf("failed to seed plan %q: %w", p.Name, err)
		}
	}

	serviceQuery := tx.Rebind(`INSERT INTO services (name, name_fa, description, description_fa, price, credits, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, svc := range seedServices {
		if _, err := tx.ExecContext(ctx, serviceQuery,
			svc.Name, svc.NameFa, svc.Description, svc.DescriptionFa, svc.Price, svc.Credits, svc.IsActive, now); err != nil {
			return false, fmt.Errorf("failed to seed service %q: %w", svc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit seed: %w", err)
	}

	return true, nil
}
