package ledger

import (
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	ledger *Ledger
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.ledger = New(slog.Default())
	s.ledger.Load(map[string]decimal.Decimal{
		"vbank": decimal.NewFromInt(100),
		"abank": decimal.NewFromInt(50),
		"sbank": decimal.NewFromInt(200),
	})
}

func (s *LedgerTestSuite) TestBalance() {
	balance, err := s.ledger.Balance("vbank")
	require.NoError(s.T(), err)
	assert.True(s.T(), balance.Equal(decimal.NewFromInt(100)))

	_, err = s.ledger.Balance("unknown")
	assert.ErrorIs(s.T(), err, ErrUnknownAccount)
}

func (s *LedgerTestSuite) TestLoadReplacesSnapshot() {
	s.ledger.Load(map[string]decimal.Decimal{
		"vbank": decimal.NewFromInt(1),
	})

	assert.False(s.T(), s.ledger.Tracks("abank"))
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(1)))
}

func (s *LedgerTestSuite) TestCredit() {
	balance, err := s.ledger.Credit("vbank", decimal.NewFromInt(25))
	require.NoError(s.T(), err)
	assert.True(s.T(), balance.Equal(decimal.NewFromInt(125)))
}

func (s *LedgerTestSuite) TestCredit_Invalid() {
	_, err := s.ledger.Credit("vbank", decimal.Zero)
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	_, err = s.ledger.Credit("vbank", decimal.NewFromInt(-5))
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	_, err = s.ledger.Credit("unknown", decimal.NewFromInt(5))
	assert.ErrorIs(s.T(), err, ErrUnknownAccount)
}

func (s *LedgerTestSuite) TestDebit() {
	balance, err := s.ledger.Debit("sbank", decimal.NewFromInt(200))
	require.NoError(s.T(), err)
	assert.True(s.T(), balance.IsZero())
}

func (s *LedgerTestSuite) TestDebit_InsufficientFundsIsNoOp() {
	_, err := s.ledger.Debit("abank", decimal.NewFromInt(51))
	assert.ErrorIs(s.T(), err, ErrInsufficientFunds)

	balance, err := s.ledger.Balance("abank")
	require.NoError(s.T(), err)
	assert.True(s.T(), balance.Equal(decimal.NewFromInt(50)))
}

func (s *LedgerTestSuite) TestTransfer_Internal() {
	outcome, err := s.ledger.Transfer("vbank", "abank", decimal.NewFromInt(30))
	require.NoError(s.T(), err)

	assert.False(s.T(), outcome.External)
	assert.True(s.T(), outcome.FromBalance.Equal(decimal.NewFromInt(70)))
	assert.True(s.T(), outcome.ToBalance.Equal(decimal.NewFromInt(80)))

	sbank, err := s.ledger.Balance("sbank")
	require.NoError(s.T(), err)
	assert.True(s.T(), sbank.Equal(decimal.NewFromInt(200)))

	// Internal transfers conserve the total
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(350)))
}

func (s *LedgerTestSuite) TestTransfer_ExternalReducesTotal() {
	outcome, err := s.ledger.Transfer("vbank", "friend-card", decimal.NewFromInt(10))
	require.NoError(s.T(), err)

	assert.True(s.T(), outcome.External)
	assert.True(s.T(), outcome.FromBalance.Equal(decimal.NewFromInt(90)))
	assert.True(s.T(), outcome.ToBalance.IsZero())

	// The destination is never tracked retroactively
	assert.False(s.T(), s.ledger.Tracks("friend-card"))
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(340)))
}

func (s *LedgerTestSuite) TestTransfer_SequenceMatchesExpectedBalances() {
	_, err := s.ledger.Transfer("vbank", "abank", decimal.NewFromInt(30))
	require.NoError(s.T(), err)

	_, err = s.ledger.Transfer("vbank", "external", decimal.NewFromInt(10))
	require.NoError(s.T(), err)

	vbank, _ := s.ledger.Balance("vbank")
	abank, _ := s.ledger.Balance("abank")
	sbank, _ := s.ledger.Balance("sbank")

	assert.True(s.T(), vbank.Equal(decimal.NewFromInt(60)))
	assert.True(s.T(), abank.Equal(decimal.NewFromInt(80)))
	assert.True(s.T(), sbank.Equal(decimal.NewFromInt(200)))
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(340)))
}

func (s *LedgerTestSuite) TestTransfer_Failures() {
	_, err := s.ledger.Transfer("vbank", "abank", decimal.Zero)
	assert.ErrorIs(s.T(), err, ErrInvalidAmount)

	_, err = s.ledger.Transfer("unknown", "abank", decimal.NewFromInt(10))
	assert.ErrorIs(s.T(), err, ErrUnknownAccount)

	_, err = s.ledger.Transfer("abank", "vbank", decimal.NewFromInt(1000))
	assert.ErrorIs(s.T(), err, ErrInsufficientFunds)

	// Every failure leaves all balances untouched
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(350)))
}

func (s *LedgerTestSuite) TestBalancesReturnsCopy() {
	snapshot := s.ledger.Balances()
	snapshot["vbank"] = decimal.NewFromInt(0)

	balance, err := s.ledger.Balance("vbank")
	require.NoError(s.T(), err)
	assert.True(s.T(), balance.Equal(decimal.NewFromInt(100)))
}

func (s *LedgerTestSuite) TestSetBalanceStartsTracking() {
	s.ledger.SetBalance("dbank", decimal.NewFromInt(5))

	assert.True(s.T(), s.ledger.Tracks("dbank"))
	assert.True(s.T(), s.ledger.TotalBudget().Equal(decimal.NewFromInt(355)))
}
