package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail  ErrorCode = "VALIDATION_005"
	ValidationInvalidDate   ErrorCode = "VALIDATION_006"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound              ErrorCode = "ACCOUNT_001"
	AccountInactive              ErrorCode = "ACCOUNT_002"
	AccountInsufficientBalance   ErrorCode = "ACCOUNT_003"
	AccountInvalidNumber         ErrorCode = "ACCOUNT_004"
	AccountOperationNotPermitted ErrorCode = "ACCOUNT_005"
	AccountEmailExists           ErrorCode = "ACCOUNT_006"
	AccountBalanceNotZero        ErrorCode = "ACCOUNT_007"
	AccountClosed                ErrorCode = "ACCOUNT_008"
	AccountHasPendingActivity    ErrorCode = "ACCOUNT_009"
	AccountConcurrentUpdate      ErrorCode = "ACCOUNT_010"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound          ErrorCode = "TRANSACTION_001"
	TransactionInvalidAmount     ErrorCode = "TRANSACTION_002"
	TransactionInsufficientFunds ErrorCode = "TRANSACTION_003"
	TransactionNotPending        ErrorCode = "TRANSACTION_004"
	TransactionInvalidType       ErrorCode = "TRANSACTION_005"
)

// Transfer error codes (TRANSFER_*)
const (
	TransferSameAccount       ErrorCode = "TRANSFER_001"
	TransferRecipientNotFound ErrorCode = "TRANSFER_002"
	TransferFailed            ErrorCode = "TRANSFER_003"
	TransferInsufficientFunds ErrorCode = "TRANSFER_004"
	TransferInvalidAmount     ErrorCode = "TRANSFER_005"
)

// Card error codes (CARD_*)
const (
	CardNotFound       ErrorCode = "CARD_001"
	CardAlreadyBlocked ErrorCode = "CARD_002"
	CardNotBlocked     ErrorCode = "CARD_003"
	CardExpired        ErrorCode = "CARD_004"
)

// Loan error codes (LOAN_*)
const (
	LoanNotFound       ErrorCode = "LOAN_001"
	LoanNotActive      ErrorCode = "LOAN_002"
	LoanInvalidPayment ErrorCode = "LOAN_003"
	LoanInvalidTerms   ErrorCode = "LOAN_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidEmail:  "Invalid email address format",
	ValidationInvalidDate:   "Invalid date format or range",

	// Account errors
	AccountNotFound:              "Account not found",
	AccountInactive:              "Account is not active",
	AccountInsufficientBalance:   "Insufficient account balance",
	AccountInvalidNumber:         "Invalid account number format",
	AccountOperationNotPermitted: "Account operation not permitted",
	AccountEmailExists:           "An account with this email already exists",
	AccountBalanceNotZero:        "Account balance must be zero for this operation",
	AccountClosed:                "Account is closed",
	AccountHasPendingActivity:    "Account has pending transactions or active loans",
	AccountConcurrentUpdate:      "Account was modified concurrently. Please retry",

	// Transaction errors
	TransactionNotFound:          "Transaction not found",
	TransactionInvalidAmount:     "Invalid transaction amount",
	TransactionInsufficientFunds: "Insufficient account balance for this transaction",
	TransactionNotPending:        "Transaction is not in a pending state",
	TransactionInvalidType:       "Invalid transaction type",

	// Transfer errors
	TransferSameAccount:       "Cannot transfer to the same account",
	TransferRecipientNotFound: "Recipient account not found",
	TransferFailed:            "Transfer failed",
	TransferInsufficientFunds: "Source account has insufficient balance for this transfer",
	TransferInvalidAmount:     "Invalid transfer amount",

	// Card errors
	CardNotFound:       "Card not found",
	CardAlreadyBlocked: "Card is already blocked",
	CardNotBlocked:     "Card is not blocked",
	CardExpired:        "Card is expired",

	// Loan errors
	LoanNotFound:       "Loan not found",
	LoanNotActive:      "Loan is not active",
	LoanInvalidPayment: "Invalid loan payment amount",
	LoanInvalidTerms:   "Invalid loan terms",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
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
