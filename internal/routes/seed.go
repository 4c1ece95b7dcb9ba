package routes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rupee-vest/rupee_vest/internal/identity"
	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/plan"
)

// seedDemoData provisions the demo accounts and the plan catalog for
// in-memory dev runs: an admin operator, a funded investor and three plans.
func seedDemoData(ids *identity.Service, repo identity.Repository, led ledger.Ledger, plans *plan.Service) error {
	ctx := context.Background()

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := identity.User{
		ID:           uuid.NewString(),
		Username:     "admin",
		PasswordHash: adminHash,
		Admin:        true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	if err := led.EnsureWallet(ctx, admin.ID); err != nil {
		return err
	}

	investor, err := ids.Register(ctx, identity.Credentials{Username: "raju", Password: "123456"})
	if err != nil {
		return err
	}
	if err := led.EnsureWallet(ctx, investor.ID); err != nil {
		return err
	}
	if _, err := led.Credit(ctx, investor.ID, 50_000); err != nil {
		return err
	}

	catalog := []plan.CreateInput{
		{Name: "Starter 7D 20%", MinAmount: 10_000, ReturnBasisPoints: 2_000, DurationDays: 7, Active: true},
		{Name: "Growth 15D 30%", MinAmount: 20_000, ReturnBasisPoints: 3_000, DurationDays: 15, Active: true},
		{Name: "Pro 30D 70%", MinAmount: 50_000, ReturnBasisPoints: 7_000, DurationDays: 30, Active: true},
	}
	for _, input := range catalog {
		if _, err := plans.Create(ctx, input); err != nil {
			return err
		}
	}

	return nil
}
