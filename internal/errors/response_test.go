package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ErrorResponseTestSuite struct {
	suite.Suite
}

func TestErrorResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorResponseTestSuite))
}

func (s *ErrorResponseTestSuite) TestNewErrorResponse() {
	resp := NewErrorResponse(LedgerInsufficientFunds, "trace-123")

	assert.Equal(s.T(), "LEDGER_003", resp.Error.Code)
	assert.Equal(s.T(), GetErrorMessage(LedgerInsufficientFunds), resp.Error.Message)
	assert.Equal(s.T(), "trace-123", resp.Error.TraceID)
	assert.Empty(s.T(), resp.Error.Details)
}

func (s *ErrorResponseTestSuite) TestNewErrorResponse_WithOptions() {
	resp := NewErrorResponse(ValidationGeneral, "trace-1",
		WithDetails("amount: must be positive"),
		WithMessage("Custom message"),
	)

	assert.Equal(s.T(), "Custom message", resp.Error.Message)
	assert.Equal(s.T(), []string{"amount: must be positive"}, resp.Error.Details)
}

func (s *ErrorResponseTestSuite) TestNewValidationError() {
	resp := NewValidationError(map[string]string{"amount": "is required"}, "trace-2")

	assert.Equal(s.T(), string(ValidationGeneral), resp.Error.Code)
	require.Len(s.T(), resp.Error.Details, 1)
	assert.Equal(s.T(), "amount: is required", resp.Error.Details[0])
}

func (s *ErrorResponseTestSuite) TestWrapSystemError() {
	internal := errors.New("dial tcp: connection refused")
	resp, err := WrapSystemError(internal, "trace-3")

	assert.Equal(s.T(), internal, err)
	assert.Equal(s.T(), string(SystemInternalError), resp.Error.Code)
	// Internal details never leak to the client
	assert.NotContains(s.T(), resp.Error.Message, "dial tcp")
}

func (s *ErrorResponseTestSuite) TestGetHTTPStatus() {
	cases := map[ErrorCode]int{
		ValidationGeneral:         http.StatusBadRequest,
		TransferSameAccount:       http.StatusBadRequest,
		AuthInvalidPassword:       http.StatusUnauthorized,
		AuthExpiredToken:          http.StatusUnauthorized,
		LedgerUnknownAccount:      http.StatusNotFound,
		AutopayRuleNotFound:       http.StatusNotFound,
		LedgerInsufficientFunds:   http.StatusUnprocessableEntity,
		ProviderMalformedResponse: http.StatusUnprocessableEntity,
		SystemRateLimitExceeded:   http.StatusTooManyRequests,
		ProviderUnavailable:       http.StatusServiceUnavailable,
		SystemInternalError:       http.StatusInternalServerError,
		ErrorCode("UNKNOWN_999"):  http.StatusInternalServerError,
	}

	for code, expected := range cases {
		assert.Equal(s.T(), expected, GetHTTPStatus(code), string(code))
	}
}

func (s *ErrorResponseTestSuite) TestClientServerClassification() {
	assert.True(s.T(), NewErrorResponse(ValidationGeneral, "t").IsClientError())
	assert.False(s.T(), NewErrorResponse(ValidationGeneral, "t").IsServerError())

	assert.True(s.T(), NewErrorResponse(SystemInternalError, "t").IsServerError())
	assert.False(s.T(), NewErrorResponse(SystemInternalError, "t").IsClientError())
}

func (s *ErrorResponseTestSuite) TestToJSON() {
	resp := NewErrorResponse(AuthInvalidPassword, "trace-9")

	raw, err := resp.ToJSON()
	require.NoError(s.T(), err)

	var decoded ErrorResponse
	require.NoError(s.T(), json.Unmarshal(raw, &decoded))
	assert.Equal(s.T(), "AUTH_001", decoded.Error.Code)
	assert.Equal(s.T(), "trace-9", decoded.Error.TraceID)
}

func (s *ErrorResponseTestSuite) TestIsValidErrorCode() {
	assert.True(s.T(), IsValidErrorCode(LedgerUnknownAccount))
	assert.False(s.T(), IsValidErrorCode(ErrorCode("NOPE_001")))
}
