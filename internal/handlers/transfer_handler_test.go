package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"multibank/internal/dto"
	"multibank/internal/ledger"
	"multibank/internal/models"
	"multibank/internal/services"
	"multibank/internal/services/service_mocks"
)

func TestTransferHandler(t *testing.T) {
	suite.Run(t, new(TransferHandlerSuite))
}

type TransferHandlerSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transferService *service_mocks.MockTransferServiceInterface
	ledger          *ledger.Ledger
	handler         *TransferHandler
	e               *echo.Echo
}

func (s *TransferHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transferService = service_mocks.NewMockTransferServiceInterface(s.ctrl)
	s.ledger = ledger.New(slog.Default())
	s.ledger.Load(map[string]decimal.Decimal{
		"vbank": decimal.NewFromInt(100),
		"abank": decimal.NewFromInt(50),
	})
	s.handler = NewTransferHandler(s.transferService, s.ledger)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *TransferHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *TransferHandlerSuite) postTransfer(body []byte) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPost, "/api/transfers", bytes.NewBuffer(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	return rec, s.handler.CreateTransfer(c)
}

func (s *TransferHandlerSuite) validRequest() dto.TransferRequest {
	return dto.TransferRequest{
		FromBank: "vbank",
		ToBank:   "abank",
		Amount:   "30",
	}
}

func (s *TransferHandlerSuite) TestCreateTransfer() {
	s.Run("successful transfer", func() {
		expected := &models.Transfer{
			FromProvider: "vbank",
			ToProvider:   "abank",
			Amount:       decimal.NewFromInt(30),
			Status:       models.TransferStatusCompleted,
		}
		s.transferService.EXPECT().
			Transfer("vbank", "abank", gomock.Any(), "", "").
			Return(expected, nil).
			Times(1)

		body, _ := json.Marshal(s.validRequest())
		rec, err := s.postTransfer(body)

		s.NoError(err)
		s.Equal(http.StatusCreated, rec.Code)

		var response dto.TransferResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("vbank", response.Transfer.FromProvider)
		s.NotEmpty(response.FormattedTotal)
	})

	s.Run("insufficient funds", func() {
		s.transferService.EXPECT().
			Transfer("vbank", "abank", gomock.Any(), "", "").
			Return(nil, services.ErrInsufficientFunds).
			Times(1)

		body, _ := json.Marshal(s.validRequest())
		rec, err := s.postTransfer(body)

		s.NoError(err)
		s.Equal(http.StatusUnprocessableEntity, rec.Code)

		var response ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("LEDGER_003", response.Error.Code)
	})

	s.Run("unknown source account", func() {
		s.transferService.EXPECT().
			Transfer("vbank", "abank", gomock.Any(), "", "").
			Return(nil, services.ErrUnknownAccount).
			Times(1)

		body, _ := json.Marshal(s.validRequest())
		rec, err := s.postTransfer(body)

		s.NoError(err)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("same account rejected", func() {
		s.transferService.EXPECT().
			Transfer("vbank", "vbank", gomock.Any(), "", "").
			Return(nil, services.ErrSameAccountTransfer).
			Times(1)

		request := s.validRequest()
		request.ToBank = "vbank"
		body, _ := json.Marshal(request)
		rec, err := s.postTransfer(body)

		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)

		var response ErrorResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal("TRANSFER_001", response.Error.Code)
	})

	s.Run("invalid amount fails validation", func() {
		request := s.validRequest()
		request.Amount = "-5"
		body, _ := json.Marshal(request)
		_, err := s.postTransfer(body)

		s.Error(err)
	})

	s.Run("malformed body", func() {
		rec, err := s.postTransfer([]byte("{oops"))

		s.NoError(err)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *TransferHandlerSuite) TestListRecentTransfers() {
	s.Run("returns history newest first", func() {
		history := []models.Transfer{
			{FromProvider: "vbank", ToProvider: "abank", Amount: decimal.NewFromInt(30)},
			{FromProvider: "abank", ToProvider: "sbank", Amount: decimal.NewFromInt(10)},
		}
		s.transferService.EXPECT().RecentTransfers().Return(history, nil).Times(1)

		req := httptest.NewRequest(http.MethodGet, "/api/transfers/recent", nil)
		rec := httptest.NewRecorder()
		c := s.e.NewContext(req, rec)

		s.NoError(s.handler.ListRecentTransfers(c))
		s.Equal(http.StatusOK, rec.Code)

		var response dto.TransferListResponse
		s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
		s.Equal(2, response.Total)
		s.Len(response.Transfers, 2)
	})
}
