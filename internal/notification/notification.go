package notification

import (
	"context"
	"log/slog"
)

const (
	// KindDepositApproved fires when an admin approves a deposit request.
	KindDepositApproved = "deposit.approved"
	// KindWithdrawApproved fires when an admin approves a withdraw request.
	KindWithdrawApproved = "withdraw.approved"
	// KindRequestRejected fires when an admin rejects a pending request.
	KindRequestRejected = "request.rejected"
	// KindInvestmentOpened fires when a user locks funds into a plan.
	KindInvestmentOpened = "investment.opened"
	// KindInvestmentClaimed fires when a matured investment pays out.
	KindInvestmentClaimed = "investment.claimed"
)

// Event describes a wallet lifecycle notification. Amounts are paise.
type Event struct {
	Kind      string `json:"kind"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount_paise"`
	Reference string `json:"reference,omitempty"`
}

// Notifier delivers events to downstream systems.
type Notifier interface {
	Send(ctx context.Context, event Event) error
}

// LoggerNotifier is a stub implementation that writes events to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the event to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, event Event) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		"kind", event.Kind,
		"account_id", event.AccountID,
		"amount_paise", event.Amount,
		"reference", event.Reference,
	)
	return nil
}
