package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidPassword    ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Ledger error codes (LEDGER_*)
const (
	LedgerUnknownAccount    ErrorCode = "LEDGER_001"
	LedgerInvalidAmount     ErrorCode = "LEDGER_002"
	LedgerInsufficientFunds ErrorCode = "LEDGER_003"
)

// Provider error codes (PROVIDER_*)
const (
	ProviderUnknown           ErrorCode = "PROVIDER_001"
	ProviderMalformedResponse ErrorCode = "PROVIDER_002"
	ProviderUnavailable       ErrorCode = "PROVIDER_003"
	ProviderConsentPending    ErrorCode = "PROVIDER_004"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount   ErrorCode = "TRANSFER_001"
	TransferInvalidAmount ErrorCode = "TRANSFER_002"
	TransferFailed        ErrorCode = "TRANSFER_003"
)

// Autopay error codes (AUTOPAY_*)
const (
	AutopayRuleNotFound ErrorCode = "AUTOPAY_001"
	AutopayInvalidRule  ErrorCode = "AUTOPAY_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemStorageError       ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidPassword:    "Invalid password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// Ledger errors
	LedgerUnknownAccount:    "Account is not tracked by the ledger",
	LedgerInvalidAmount:     "Amount must be a positive number",
	LedgerInsufficientFunds: "Insufficient balance for this operation",

	// Provider errors
	ProviderUnknown:           "Unknown bank provider",
	ProviderMalformedResponse: "Provider returned an unrecognizable response",
	ProviderUnavailable:       "Bank provider is temporarily unavailable",
	ProviderConsentPending:    "Account access consent is still pending",

	// Transfer errors
	TransferSameAccount:   "Cannot transfer to the same account",
	TransferInvalidAmount: "Invalid transfer amount",
	TransferFailed:        "Transfer could not be completed",

	// Autopay errors
	AutopayRuleNotFound: "Auto-transfer rule not found",
	AutopayInvalidRule:  "Auto-transfer rule is invalid",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemStorageError:       "Local storage error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
