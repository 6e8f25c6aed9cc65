package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for the HTTP error handler
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.HTTPErrorHandler = CustomHTTPErrorHandler
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) handleError(err error, traceID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	if traceID != "" {
		c.Set(TraceIDContextKey, traceID)
	}

	CustomHTTPErrorHandler(err, c)
	return rec
}

// TestEchoHTTPError tests that echo's own errors keep their status and message
func (s *ErrorHandlerTestSuite) TestEchoHTTPError() {
	rec := s.handleError(echo.NewHTTPError(http.StatusNotFound, "Resource not found"), "test-trace-id")

	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "test-trace-id")
	s.Contains(rec.Body.String(), "Resource not found")
}

// TestGenericError tests that unclassified errors become SYSTEM_001
func (s *ErrorHandlerTestSuite) TestGenericError() {
	rec := s.handleError(errors.New("generic error"), "test-trace-id")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "SYSTEM_001")
	s.Contains(rec.Body.String(), "test-trace-id")
	// Internal details must not leak to the client
	s.NotContains(rec.Body.String(), "generic error")
}

// TestNoTraceID tests the trace ID fallback
func (s *ErrorHandlerTestSuite) TestNoTraceID() {
	rec := s.handleError(errors.New("test error"), "")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Contains(rec.Body.String(), "unknown")
}

// TestCommittedResponse tests that an already-written response is left alone
func (s *ErrorHandlerTestSuite) TestCommittedResponse() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	_ = c.JSON(http.StatusOK, map[string]string{"status": "ok"})

	CustomHTTPErrorHandler(errors.New("test error"), c)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ok")
}

// TestStatusToErrorCode tests the code assigned to each routing-level status
func (s *ErrorHandlerTestSuite) TestStatusToErrorCode() {
	testCases := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, "VALIDATION_001"},
		{http.StatusNotFound, "ACCOUNT_001"},
		{http.StatusUnprocessableEntity, "VALIDATION_001"},
		{http.StatusTooManyRequests, "SYSTEM_004"},
		{http.StatusInternalServerError, "SYSTEM_001"},
		{http.StatusServiceUnavailable, "SYSTEM_003"},
		{999, "SYSTEM_001"},
	}

	for _, tc := range testCases {
		s.Run(http.StatusText(tc.status), func() {
			rec := s.handleError(echo.NewHTTPError(tc.status), "test-trace-id")

			s.Equal(tc.status, rec.Code)
			s.Contains(rec.Body.String(), tc.expectedCode)
		})
	}
}

// TestJSONContentType tests that the envelope is served as JSON
func (s *ErrorHandlerTestSuite) TestJSONContentType() {
	rec := s.handleError(errors.New("test error"), "test-trace-id")

	s.Contains(rec.Header().Get("Content-Type"), "application/json")
}
