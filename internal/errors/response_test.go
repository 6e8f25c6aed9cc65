package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

// SetupTest runs before each test
func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

// TestNewErrorResponse_BasicUsage tests creating a basic error response
func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(AccountNotFound, s.traceID)

	s.NotNil(response)
	s.False(response.Success)
	s.Equal("ACCOUNT_001", response.Code)
	s.Equal("Account not found", response.Message)
	s.Equal(s.traceID, response.TraceID)
	s.Empty(response.Errors)
}

// TestNewErrorResponse_WithDetails tests creating error response with details
func (s *ResponseTestSuite) TestNewErrorResponse_WithDetails() {
	details := []string{"Field validation failed", "Email is required"}
	response := NewErrorResponse(ValidationGeneral, s.traceID, WithDetails(details...))

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Code)
	s.Equal("Validation failed", response.Message)
	s.Equal(s.traceID, response.TraceID)
	s.Equal(details, response.Errors)
}

// TestNewErrorResponse_WithCustomMessage tests creating error response with custom message
func (s *ResponseTestSuite) TestNewErrorResponse_WithCustomMessage() {
	customMessage := "Custom error message for specific context"
	response := NewErrorResponse(SystemInternalError, s.traceID, WithMessage(customMessage))

	s.NotNil(response)
	s.Equal("SYSTEM_001", response.Code)
	s.Equal(customMessage, response.Message)
	s.Equal(s.traceID, response.TraceID)
}

// TestNewErrorResponse_WithMultipleOptions tests using multiple functional options
func (s *ResponseTestSuite) TestNewErrorResponse_WithMultipleOptions() {
	customMessage := "Custom message"
	details := []string{"Detail 1", "Detail 2"}
	response := NewErrorResponse(
		AccountNotFound,
		s.traceID,
		WithMessage(customMessage),
		WithDetails(details...),
	)

	s.NotNil(response)
	s.Equal("ACCOUNT_001", response.Code)
	s.Equal(customMessage, response.Message)
	s.Equal(details, response.Errors)
	s.Equal(s.traceID, response.TraceID)
}

// TestNewValidationError_WithFieldErrors tests creating validation error from field map
func (s *ResponseTestSuite) TestNewValidationError_WithFieldErrors() {
	fieldErrors := map[string]string{
		"email":      "must be a valid email address",
		"amount":     "must be greater than 0",
		"owner_name": "is required",
	}

	response := NewValidationError(fieldErrors, s.traceID)

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Code)
	s.Equal("Validation failed", response.Message)
	s.Equal(s.traceID, response.TraceID)
	s.Len(response.Errors, 3)

	// Check that all field errors are included (order may vary due to map iteration)
	detailsMap := make(map[string]bool)
	for _, detail := range response.Errors {
		detailsMap[detail] = true
	}
	s.True(detailsMap["email: must be a valid email address"])
	s.True(detailsMap["amount: must be greater than 0"])
	s.True(detailsMap["owner_name: is required"])
}

// TestNewValidationError_EmptyFieldErrors tests validation error with empty field map
func (s *ResponseTestSuite) TestNewValidationError_EmptyFieldErrors() {
	fieldErrors := map[string]string{}
	response := NewValidationError(fieldErrors, s.traceID)

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Code)
	s.Empty(response.Errors)
}

// TestNewValidationErrorFromList_Success tests creating validation error from list
func (s *ResponseTestSuite) TestNewValidationErrorFromList_Success() {
	details := []string{
		"email: must be a valid email address",
		"amount: must be greater than 0",
	}

	response := NewValidationErrorFromList(details, s.traceID)

	s.NotNil(response)
	s.Equal("VALIDATION_001", response.Code)
	s.Equal("Validation failed", response.Message)
	s.Equal(details, response.Errors)
	s.Equal(s.traceID, response.TraceID)
}

// TestWrapSystemError_Success tests wrapping system errors
func (s *ResponseTestSuite) TestWrapSystemError_Success() {
	internalErr := errors.New("database connection failed")

	response, originalErr := WrapSystemError(internalErr, s.traceID)

	s.NotNil(response)
	s.Equal("SYSTEM_001", response.Code)
	s.Equal("An unexpected error occurred. Please contact support with trace ID", response.Message)
	s.Equal(s.traceID, response.TraceID)
	s.Empty(response.Errors)

	// Ensure original error is returned for logging
	s.Equal(internalErr, originalErr)
	s.Equal("database connection failed", originalErr.Error())
}

// TestWrapSystemError_NoInternalDetailsExposed tests that internal details are not exposed
func (s *ResponseTestSuite) TestWrapSystemError_NoInternalDetailsExposed() {
	sensitiveErr := errors.New("SQL error: table 'accounts' does not exist at /var/lib/postgresql/data")

	response, _ := WrapSystemError(sensitiveErr, s.traceID)

	// Ensure the response message doesn't contain sensitive information
	s.NotContains(response.Message, "SQL")
	s.NotContains(response.Message, "table")
	s.NotContains(response.Message, "/var/lib/postgresql")
	s.Empty(response.Errors)
}

// TestWrapDatabaseError_Success tests wrapping database errors
func (s *ResponseTestSuite) TestWrapDatabaseError_Success() {
	dbErr := errors.New("connection pool exhausted")

	response, originalErr := WrapDatabaseError(dbErr, s.traceID)

	s.NotNil(response)
	s.Equal("SYSTEM_002", response.Code)
	s.Equal("Database connection error", response.Message)
	s.Equal(s.traceID, response.TraceID)
	s.Empty(response.Errors)

	// Ensure original error is returned
	s.Equal(dbErr, originalErr)
}

// TestToJSON_ValidSerialization tests JSON serialization of error response
func (s *ResponseTestSuite) TestToJSON_ValidSerialization() {
	response := NewErrorResponse(
		AccountNotFound,
		s.traceID,
		WithDetails("Account ID: 12345"),
	)

	jsonBytes, err := response.ToJSON()

	s.NoError(err)
	s.NotEmpty(jsonBytes)

	// Unmarshal and verify structure
	var unmarshaled ErrorResponse
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	s.NoError(err)
	s.False(unmarshaled.Success)
	s.Equal("ACCOUNT_001", unmarshaled.Code)
	s.Equal("Account not found", unmarshaled.Message)
	s.Equal(s.traceID, unmarshaled.TraceID)
	s.Contains(unmarshaled.Errors, "Account ID: 12345")
}

// TestToJSON_EnvelopeShape tests the serialized envelope fields
func (s *ResponseTestSuite) TestToJSON_EnvelopeShape() {
	response := NewErrorResponse(
		ValidationGeneral,
		s.traceID,
		WithDetails("email: invalid format"),
	)

	jsonBytes, err := response.ToJSON()
	s.NoError(err)

	var jsonMap map[string]interface{}
	err = json.Unmarshal(jsonBytes, &jsonMap)
	s.NoError(err)

	s.Contains(jsonMap, "success")
	s.Contains(jsonMap, "message")
	s.Contains(jsonMap, "errors")
	s.Contains(jsonMap, "code")
	s.Contains(jsonMap, "trace_id")

	s.Equal(false, jsonMap["success"])
	s.IsType("", jsonMap["message"])
	s.IsType("", jsonMap["code"])
	s.IsType("", jsonMap["trace_id"])
	s.IsType([]interface{}{}, jsonMap["errors"])
}

// TestGetHTTPStatus_AllErrorCodes tests HTTP status mapping for all error codes
func (s *ResponseTestSuite) TestGetHTTPStatus_AllErrorCodes() {
	testCases := []struct {
		name           string
		code           ErrorCode
		expectedStatus int
	}{
		// 400 Bad Request
		{"Validation General", ValidationGeneral, http.StatusBadRequest},
		{"Validation Required Field", ValidationRequiredField, http.StatusBadRequest},
		{"Validation Invalid Email", ValidationInvalidEmail, http.StatusBadRequest},
		{"Transaction Invalid Amount", TransactionInvalidAmount, http.StatusBadRequest},
		{"Transfer Same Account", TransferSameAccount, http.StatusBadRequest},
		{"Account Invalid Number", AccountInvalidNumber, http.StatusBadRequest},

		// 404 Not Found
		{"Account Not Found", AccountNotFound, http.StatusNotFound},
		{"Transaction Not Found", TransactionNotFound, http.StatusNotFound},
		{"Transfer Recipient Not Found", TransferRecipientNotFound, http.StatusNotFound},
		{"Card Not Found", CardNotFound, http.StatusNotFound},
		{"Loan Not Found", LoanNotFound, http.StatusNotFound},

		// 409 Conflict
		{"Account Email Exists", AccountEmailExists, http.StatusConflict},
		{"Account Concurrent Update", AccountConcurrentUpdate, http.StatusConflict},

		// 422 Unprocessable Entity
		{"Account Inactive", AccountInactive, http.StatusUnprocessableEntity},
		{"Account Insufficient Balance", AccountInsufficientBalance, http.StatusUnprocessableEntity},
		{"Account Balance Not Zero", AccountBalanceNotZero, http.StatusUnprocessableEntity},
		{"Account Has Pending Activity", AccountHasPendingActivity, http.StatusUnprocessableEntity},
		{"Transaction Not Pending", TransactionNotPending, http.StatusUnprocessableEntity},
		{"Transfer Insufficient Funds", TransferInsufficientFunds, http.StatusUnprocessableEntity},
		{"Card Already Blocked", CardAlreadyBlocked, http.StatusUnprocessableEntity},
		{"Loan Not Active", LoanNotActive, http.StatusUnprocessableEntity},

		// 429 Too Many Requests
		{"System Rate Limit Exceeded", SystemRateLimitExceeded, http.StatusTooManyRequests},

		// 500 Internal Server Error
		{"System Internal Error", SystemInternalError, http.StatusInternalServerError},
		{"System Database Error", SystemDatabaseError, http.StatusInternalServerError},

		// 503 Service Unavailable
		{"System Service Unavailable", SystemServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			status := GetHTTPStatus(tc.code)
			s.Equal(tc.expectedStatus, status)
		})
	}
}

// TestGetHTTPStatus_UnknownCode tests HTTP status for unknown error code
func (s *ResponseTestSuite) TestGetHTTPStatus_UnknownCode() {
	status := GetHTTPStatus("UNKNOWN_999")
	s.Equal(http.StatusInternalServerError, status)
}

// TestGetHTTPStatusForResponse_Success tests getting HTTP status from response
func (s *ResponseTestSuite) TestGetHTTPStatusForResponse_Success() {
	response := NewErrorResponse(AccountNotFound, s.traceID)
	status := response.GetHTTPStatus()
	s.Equal(http.StatusNotFound, status)
}

// TestIsClientError_4xxErrors tests client error detection
func (s *ResponseTestSuite) TestIsClientError_4xxErrors() {
	clientErrorCodes := []ErrorCode{
		ValidationGeneral,
		AccountNotFound,
		AccountEmailExists,
		TransactionInvalidAmount,
		TransferSameAccount,
	}

	for _, code := range clientErrorCodes {
		s.Run(string(code), func() {
			response := NewErrorResponse(code, s.traceID)
			s.True(response.IsClientError())
			s.False(response.IsServerError())
		})
	}
}

// TestIsServerError_5xxErrors tests server error detection
func (s *ResponseTestSuite) TestIsServerError_5xxErrors() {
	serverErrorCodes := []ErrorCode{
		SystemInternalError,
		SystemDatabaseError,
		SystemServiceUnavailable,
	}

	for _, code := range serverErrorCodes {
		s.Run(string(code), func() {
			response := NewErrorResponse(code, s.traceID)
			s.True(response.IsServerError())
			s.False(response.IsClientError())
		})
	}
}

// TestString_FormatsCorrectly tests string representation of error response
func (s *ResponseTestSuite) TestString_FormatsCorrectly() {
	response := NewErrorResponse(AccountNotFound, s.traceID)
	str := response.String()

	s.Contains(str, "ACCOUNT_001")
	s.Contains(str, "Account not found")
	s.Contains(str, s.traceID)
}

// TestWithDetails_MultipleInvocations tests multiple WithDetails calls
func (s *ResponseTestSuite) TestWithDetails_MultipleInvocations() {
	// Last WithDetails should win (overwrite previous)
	response := NewErrorResponse(
		ValidationGeneral,
		s.traceID,
		WithDetails("detail1", "detail2"),
		WithDetails("detail3"),
	)

	s.Equal([]string{"detail3"}, response.Errors)
}

// TestWithMessage_MultipleInvocations tests multiple WithMessage calls
func (s *ResponseTestSuite) TestWithMessage_MultipleInvocations() {
	// Last WithMessage should win
	response := NewErrorResponse(
		SystemInternalError,
		s.traceID,
		WithMessage("First message"),
		WithMessage("Second message"),
	)

	s.Equal("Second message", response.Message)
}
