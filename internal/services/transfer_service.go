package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"multibank/internal/ledger"
	"multibank/internal/models"
	"multibank/internal/repositories"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	ErrUnknownAccount      = errors.New("source account is not tracked")
	ErrInsufficientFunds   = errors.New("insufficient funds")
)

// transferService implements TransferServiceInterface. The ledger mutation
// and the history row are the client-held view only; settlement happens
// through the external payment API and is out of scope here.
type transferService struct {
	ledger       *ledger.Ledger
	transferRepo repositories.TransferRepositoryInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

// NewTransferService creates a transfer service
func NewTransferService(
	ldg *ledger.Ledger,
	transferRepo repositories.TransferRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransferServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &transferService{
		ledger:       ldg,
		transferRepo: transferRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Transfer validates and applies one money movement. The ledger operation is
// all-or-nothing; a validation or funds failure leaves every balance
// untouched. A destination outside the user's linked accounts is executed as
// an external transfer: the debit stands, no credit applies anywhere.
func (s *transferService) Transfer(
	fromProvider, toProvider string,
	amount decimal.Decimal,
	recipient, message string,
) (*models.Transfer, error) {
	start := time.Now()

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if fromProvider == toProvider {
		return nil, ErrSameAccountTransfer
	}

	outcome, err := s.ledger.Transfer(fromProvider, toProvider, amount)
	if err != nil {
		s.metrics.IncrementCounter("transfers", map[string]string{
			"status":      "failed",
			"destination": "unknown",
		})
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			return nil, ErrInvalidAmount
		case errors.Is(err, ledger.ErrUnknownAccount):
			return nil, ErrUnknownAccount
		case errors.Is(err, ledger.ErrInsufficientFunds):
			return nil, ErrInsufficientFunds
		default:
			return nil, fmt.Errorf("transfer failed: %w", err)
		}
	}

	destination := "internal"
	if outcome.External {
		destination = "external"
	}

	transfer := &models.Transfer{
		FromProvider: fromProvider,
		ToProvider:   toProvider,
		Amount:       amount,
		Recipient:    recipient,
		Message:      message,
		External:     outcome.External,
		Status:       models.TransferStatusCompleted,
	}

	if err := s.transferRepo.Create(transfer); err != nil {
		// The ledger mutation already happened and is the authoritative
		// view; a history write failure is logged, not rolled back.
		s.logger.Error("failed to record transfer history",
			"from", fromProvider,
			"to", toProvider,
			"error", err.Error(),
		)
	}

	amountFloat, _ := amount.Float64()
	totalFloat, _ := s.ledger.TotalBudget().Float64()
	s.metrics.IncrementCounter("transfers", map[string]string{
		"status":      "completed",
		"destination": destination,
	})
	s.metrics.RecordGauge("transfer_amount", amountFloat, nil)
	s.metrics.RecordGauge("total_budget", totalFloat, nil)
	s.metrics.RecordProcessingTime("transfer", time.Since(start))

	s.logger.Info("transfer completed",
		"from", fromProvider,
		"to", toProvider,
		"amount", amount.String(),
		"destination", destination,
	)

	return transfer, nil
}

// RecentTransfers returns the display history, newest first
func (s *transferService) RecentTransfers() ([]models.Transfer, error) {
	return s.transferRepo.FindRecent(models.RecentTransfersLimit)
}
