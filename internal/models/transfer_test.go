package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TransferModelTestSuite struct {
	suite.Suite
}

func TestTransferModelTestSuite(t *testing.T) {
	suite.Run(t, new(TransferModelTestSuite))
}

func (s *TransferModelTestSuite) validTransfer() Transfer {
	return Transfer{
		FromProvider: ProviderVBank,
		ToProvider:   ProviderABank,
		Amount:       decimal.NewFromInt(30),
		Status:       TransferStatusCompleted,
	}
}

func (s *TransferModelTestSuite) TestValidate_Valid() {
	transfer := s.validTransfer()
	assert.NoError(s.T(), transfer.Validate())
}

func (s *TransferModelTestSuite) TestValidate_SameProvider() {
	transfer := s.validTransfer()
	transfer.ToProvider = transfer.FromProvider
	assert.ErrorIs(s.T(), transfer.Validate(), ErrSameProviderTransfer)
}

func (s *TransferModelTestSuite) TestValidate_NonPositiveAmount() {
	transfer := s.validTransfer()
	transfer.Amount = decimal.Zero
	assert.ErrorIs(s.T(), transfer.Validate(), ErrInvalidTransferAmount)

	transfer.Amount = decimal.NewFromInt(-1)
	assert.ErrorIs(s.T(), transfer.Validate(), ErrInvalidTransferAmount)
}

func (s *TransferModelTestSuite) TestValidate_Status() {
	transfer := s.validTransfer()
	transfer.Status = "pending"
	assert.ErrorIs(s.T(), transfer.Validate(), ErrInvalidTransferStatus)
}

func (s *TransferModelTestSuite) TestIsValidTransferStatus() {
	assert.True(s.T(), IsValidTransferStatus(TransferStatusCompleted))
	assert.True(s.T(), IsValidTransferStatus(TransferStatusFailed))
	assert.False(s.T(), IsValidTransferStatus("settled"))
	assert.False(s.T(), IsValidTransferStatus(""))
}
