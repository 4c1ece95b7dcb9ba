package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rupee-vest/rupee_vest/internal/ledger"
	"github.com/rupee-vest/rupee_vest/internal/notification"
)

// Service owns the deposit/withdraw request queue. Filing a request never
// touches the ledger; approval is the single point where money moves, which
// lets an admin reject stale or fraudulent requests without a compensating
// transaction.
type Service struct {
	repo     Repository
	ledger   ledger.Ledger
	notifier notification.Notifier
}

// NewService builds the request queue service.
func NewService(repo Repository, led ledger.Ledger, notifier notification.Notifier) *Service {
	return &Service{repo: repo, ledger: led, notifier: notifier}
}

// RequestDeposit files a pending deposit request.
func (s *Service) RequestDeposit(ctx context.Context, accountID string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	t := Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Kind:      KindDeposit,
		Amount:    amount,
		Status:    StatusPending,
		Note:      "simulated deposit, admin approval required",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// RequestWithdraw files a pending withdraw request. The balance check here is
// advisory only; the balance may drop before approval, so Approve re-checks
// it under the wallet lock.
func (s *Service) RequestWithdraw(ctx context.Context, accountID string, amount int64) (Transaction, error) {
	if amount <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	balance, err := s.ledger.Balance(ctx, accountID)
	if err != nil {
		return Transaction{}, err
	}
	if balance < amount {
		return Transaction{}, ledger.ErrInsufficientFunds
	}
	t := Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Kind:      KindWithdraw,
		Amount:    amount,
		Status:    StatusPending,
		Note:      "simulated withdraw, admin approval required",
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// ListByAccount returns the account's transaction history, newest first.
func (s *Service) ListByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// ListPending returns all pending requests for admin review, oldest first.
func (s *Service) ListPending(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListPending(ctx)
}

// Approve resolves a pending request of the given kind and applies its ledger
// effect atomically. A withdraw whose wallet can no longer cover the amount
// fails with ledger.ErrInsufficientFunds and stays pending.
func (s *Service) Approve(ctx context.Context, id, kind string) (Transaction, int64, error) {
	t, balance, err := s.repo.Approve(ctx, id, kind)
	if err != nil {
		return Transaction{}, 0, err
	}

	if s.notifier != nil {
		eventKind := notification.KindDepositApproved
		if kind == KindWithdraw {
			eventKind = notification.KindWithdrawApproved
		}
		_ = s.notifier.Send(ctx, notification.Event{
			Kind:      eventKind,
			AccountID: t.AccountID,
			Amount:    t.Amount,
			Reference: t.ID,
		})
	}

	return t, balance, nil
}

// Reject resolves a pending request with no ledger effect.
func (s *Service) Reject(ctx context.Context, id, kind string) (Transaction, error) {
	t, err := s.repo.Reject(ctx, id, kind)
	if err != nil {
		return Transaction{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Event{
			Kind:      notification.KindRequestRejected,
			AccountID: t.AccountID,
			Amount:    t.Amount,
			Reference: t.ID,
		})
	}

	return t, nil
}
