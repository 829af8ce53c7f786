package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"

	apperrors "multibank/internal/errors"
	"multibank/internal/services"
	"multibank/internal/services/service_mocks"
)

func TestRequireSession(t *testing.T) {
	suite.Run(t, new(RequireSessionSuite))
}

type RequireSessionSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	sessionService *service_mocks.MockSessionServiceInterface
	e              *echo.Echo
}

func (s *RequireSessionSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sessionService = service_mocks.NewMockSessionServiceInterface(s.ctrl)
	s.e = echo.New()
}

func (s *RequireSessionSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RequireSessionSuite) do(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)

	handler := RequireSession(s.sessionService)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	s.NoError(handler(c))
	return rec
}

func (s *RequireSessionSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var response apperrors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Error.Code
}

func (s *RequireSessionSuite) TestValidToken() {
	s.sessionService.EXPECT().ValidateToken("good-token").Return(nil).Times(1)

	rec := s.do("Bearer good-token")
	s.Equal(http.StatusOK, rec.Code)
}

func (s *RequireSessionSuite) TestMissingHeader() {
	rec := s.do("")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *RequireSessionSuite) TestMalformedHeader() {
	rec := s.do("Token abc")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *RequireSessionSuite) TestExpiredToken() {
	s.sessionService.EXPECT().ValidateToken("stale").Return(services.ErrExpiredToken).Times(1)

	rec := s.do("Bearer stale")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))
}

func (s *RequireSessionSuite) TestInvalidToken() {
	s.sessionService.EXPECT().ValidateToken("garbage").Return(services.ErrInvalidToken).Times(1)

	rec := s.do("Bearer garbage")

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}
