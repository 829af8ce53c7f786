package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AccountModelTestSuite struct {
	suite.Suite
}

func TestAccountModelTestSuite(t *testing.T) {
	suite.Run(t, new(AccountModelTestSuite))
}

func (s *AccountModelTestSuite) validAccount() CanonicalAccount {
	return CanonicalAccount{
		ProviderID:   ProviderVBank,
		AccountID:    "card-1",
		MaskedNumber: "1234 **** **** 5678",
		Balance:      decimal.NewFromInt(100),
		Currency:     DefaultCurrency,
	}
}

func (s *AccountModelTestSuite) TestValidate_Valid() {
	account := s.validAccount()
	assert.NoError(s.T(), account.Validate())
}

func (s *AccountModelTestSuite) TestValidate_MissingProvider() {
	account := s.validAccount()
	account.ProviderID = ""
	assert.ErrorIs(s.T(), account.Validate(), ErrMissingProviderID)
}

func (s *AccountModelTestSuite) TestValidate_MissingAccountID() {
	account := s.validAccount()
	account.AccountID = ""
	assert.ErrorIs(s.T(), account.Validate(), ErrMissingAccountID)
}

func (s *AccountModelTestSuite) TestValidate_RejectsUnmaskedNumber() {
	account := s.validAccount()
	account.MaskedNumber = "1234567812345678"
	assert.ErrorIs(s.T(), account.Validate(), ErrUnmaskedNumber)
}

func (s *AccountModelTestSuite) TestValidate_EmptyMaskedNumberAllowed() {
	account := s.validAccount()
	account.MaskedNumber = ""
	assert.NoError(s.T(), account.Validate())
}

func (s *AccountModelTestSuite) TestIsMasked() {
	account := s.validAccount()
	assert.True(s.T(), account.IsMasked())

	account.MaskedNumber = "1234 •••• •••• 5678"
	assert.True(s.T(), account.IsMasked())

	account.MaskedNumber = "12345678"
	assert.False(s.T(), account.IsMasked())
}

func (s *AccountModelTestSuite) TestLastFour() {
	account := s.validAccount()
	assert.Equal(s.T(), "5678", account.LastFour())

	account.MaskedNumber = "12"
	assert.Equal(s.T(), "12", account.LastFour())

	account.MaskedNumber = ""
	assert.Equal(s.T(), "", account.LastFour())
}
