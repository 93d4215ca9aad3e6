package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/pokedex-web/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "entry missingno not found",
			expected: "NOT_FOUND: entry missingno not found",
		},
		{
			name:     "network error",
			code:     errors.CodeNetwork,
			message:  "gateway unreachable",
			expected: "NETWORK: gateway unreachable",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapKeepsCode() {
	base := errors.NotFound("entry not found").WithMeta("name", "missingno")
	wrapped := errors.Wrap(base, "failed to load detail")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("missingno", wrapped.Meta["name"])
	s.True(errors.IsNotFound(wrapped))
	s.ErrorIs(wrapped, errors.NotFound(""))
}

func (s *ErrorsTestSuite) TestWrapPlainErrorIsInternal() {
	wrapped := errors.Wrap(fmt.Errorf("boom"), "decode failed")

	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal("INTERNAL: decode failed: boom", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Nil(errors.Wrap(nil, "nothing"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNetwork, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCodeOverrides() {
	wrapped := errors.WrapWithCode(fmt.Errorf("dial tcp: refused"), errors.CodeNetwork, "GET /type")

	s.True(errors.IsNetwork(wrapped))
	s.False(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeCanceled, errors.GetCode(context.Canceled))
	s.Equal(errors.CodeDeadlineExceeded, errors.GetCode(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.True(errors.IsCanceled(context.Canceled))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Equal("", errors.GetMessage(nil))
	s.Equal("entry not found", errors.GetMessage(errors.NotFound("entry not found")))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	s.Equal(http.StatusNotFound, errors.CodeNotFound.HTTPStatus())
	s.Equal(http.StatusBadGateway, errors.CodeNetwork.HTTPStatus())
	s.Equal(http.StatusBadRequest, errors.CodeInvalidArgument.HTTPStatus())
	s.Equal(http.StatusInternalServerError, errors.Code("SOMETHING_ELSE").HTTPStatus())
}
