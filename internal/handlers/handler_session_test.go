package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	portssvc "github.com/cajachoca/cajachoca_backend/internal/core/ports/services"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/cajachoca/cajachoca_backend/internal/handlers"
	"github.com/cajachoca/cajachoca_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SessionService ---

type MockSessionService struct {
	mock.Mock
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

func (m *MockSessionService) OpenSession(ctx context.Context, req dto.OpenSessionRequest) (*domain.Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) GetActiveSession(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) HasActiveSession(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionService) CloseSession(ctx context.Context, sessionID int64, closingAmount decimal.Decimal) (*domain.Session, decimal.Decimal, error) {
	args := m.Called(ctx, sessionID, closingAmount)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(*domain.Session), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockSessionService) GetSessionSummary(ctx context.Context, sessionID int64) (*domain.SessionSummary, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionSummary), args.Error(1)
}

// --- Mock TransactionService ---

type MockTransactionService struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, createdBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) GetTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, transactionID int64, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, transactionID int64) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionService) SearchTransactions(ctx context.Context, query string, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionService) ListRecentTransactions(ctx context.Context, sessionID *int64, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// --- Mock CategoryService ---

type MockCategoryService struct {
	mock.Mock
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID int64, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryService) DeleteCategory(ctx context.Context, categoryID int64) error {
	args := m.Called(ctx, categoryID)
	return args.Error(0)
}

func (m *MockCategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryService) ListCategoriesByType(ctx context.Context, categoryType domain.CategoryType) ([]domain.Category, error) {
	args := m.Called(ctx, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

func (m *MockReportingService) GetDailySummary(ctx context.Context, date string) (*domain.DailySummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockReportingService) GetTodaySummary(ctx context.Context) (*domain.DailySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockReportingService) GetTransactionsSummary(ctx context.Context, date string) (*domain.TransactionsSummary, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionsSummary), args.Error(1)
}

// --- Mock OperatorService ---

type MockOperatorService struct {
	mock.Mock
}

var _ portssvc.OperatorSvcFacade = (*MockOperatorService)(nil)

func (m *MockOperatorService) CreateOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorService) RegisterFirstOperator(ctx context.Context, req dto.CreateOperatorRequest) (*domain.Operator, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorService) GetOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	args := m.Called(ctx, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

func (m *MockOperatorService) Authenticate(ctx context.Context, username, password string) (*domain.Operator, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Operator), args.Error(1)
}

// --- Test Suite ---

type SessionHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockSessionService     *MockSessionService
	mockTransactionService *MockTransactionService
	mockCategoryService    *MockCategoryService
	mockReportingService   *MockReportingService
	mockOperatorService    *MockOperatorService
	jwtSecret              string
}

// envelope mirrors the uniform response for assertions.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	TotalCount *int64          `json:"totalCount"`
	Error      *string         `json:"error"`
}

func (suite *SessionHandlerTestSuite) generateTestToken(operatorID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "cajachoca-test",
		Subject:   operatorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SessionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockSessionService = new(MockSessionService)
	suite.mockTransactionService = new(MockTransactionService)
	suite.mockCategoryService = new(MockCategoryService)
	suite.mockReportingService = new(MockReportingService)
	suite.mockOperatorService = new(MockOperatorService)

	cfg := &config.Config{
		JWTSecret:         suite.jwtSecret,
		JWTIssuer:         "cajachoca-test",
		JWTExpiryDuration: time.Hour,
		IsProduction:      true, // skip swagger routes in tests
	}

	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Session:     suite.mockSessionService,
		Transaction: suite.mockTransactionService,
		Category:    suite.mockCategoryService,
		Reporting:   suite.mockReportingService,
		Operator:    suite.mockOperatorService,
	})
}

func (suite *SessionHandlerTestSuite) doRequest(method, url string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// --- Test Cases ---

func (suite *SessionHandlerTestSuite) TestOpenSession_Success() {
	operatorID := uuid.NewString()
	opening := decimal.RequireFromString("100")
	expected := &domain.Session{SessionID: 1, OperatorName: "Ana", OpeningAmount: opening, IsActive: true}

	suite.mockSessionService.On("OpenSession", mock.Anything, mock.MatchedBy(func(req dto.OpenSessionRequest) bool {
		return req.OperatorName == "Ana" && req.OpeningAmount.Equal(opening)
	})).Return(expected, nil).Once()

	w, env := suite.doRequest(http.MethodPost, "/api/v1/sessions/open",
		dto.OpenSessionRequest{OperatorName: "Ana", OpeningAmount: opening},
		suite.generateTestToken(operatorID))

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(env.Success)
	suite.Nil(env.Error)

	var session domain.Session
	suite.Require().NoError(json.Unmarshal(env.Data, &session))
	suite.Equal("Ana", session.OperatorName)
	suite.mockSessionService.AssertExpectations(suite.T())
}

func (suite *SessionHandlerTestSuite) TestOpenSession_Conflict() {
	operatorID := uuid.NewString()
	opening := decimal.RequireFromString("50")

	suite.mockSessionService.On("OpenSession", mock.Anything, mock.AnythingOfType("dto.OpenSessionRequest")).
		Return(nil, apperrors.ErrConflict).Once()

	w, env := suite.doRequest(http.MethodPost, "/api/v1/sessions/open",
		dto.OpenSessionRequest{OperatorName: "Luis", OpeningAmount: opening},
		suite.generateTestToken(operatorID))

	suite.Equal(http.StatusConflict, w.Code)
	suite.False(env.Success)
	suite.NotNil(env.Error)
}

func (suite *SessionHandlerTestSuite) TestOpenSession_Unauthorized() {
	w, _ := suite.doRequest(http.MethodPost, "/api/v1/sessions/open",
		dto.OpenSessionRequest{OperatorName: "Ana"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "OpenSession", mock.Anything, mock.Anything)
}

func (suite *SessionHandlerTestSuite) TestGetActiveSession_NoneOpen() {
	operatorID := uuid.NewString()

	suite.mockSessionService.On("GetActiveSession", mock.Anything).Return(nil, nil).Once()

	w, env := suite.doRequest(http.MethodGet, "/api/v1/sessions/active", nil, suite.generateTestToken(operatorID))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	suite.Equal("null", string(env.Data))
}

func (suite *SessionHandlerTestSuite) TestCloseSession_ReturnsDifference() {
	operatorID := uuid.NewString()
	closing := decimal.RequireFromString("130")
	closed := &domain.Session{SessionID: 1, OperatorName: "Ana", ClosingAmount: &closing, IsActive: false}

	suite.mockSessionService.On("CloseSession", mock.Anything, int64(1), closing).
		Return(closed, decimal.RequireFromString("10"), nil).Once()

	w, env := suite.doRequest(http.MethodPost, "/api/v1/sessions/close",
		dto.CloseSessionRequest{SessionID: 1, ClosingAmount: closing},
		suite.generateTestToken(operatorID))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)

	var resp dto.ClosedSessionResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &resp))
	suite.True(resp.Difference.Equal(decimal.RequireFromString("10")))
}

func (suite *SessionHandlerTestSuite) TestCreateTransaction_InsufficientFunds() {
	operatorID := uuid.NewString()
	categoryID := int64(5)
	operator := &domain.Operator{OperatorID: operatorID, Name: "Ana"}

	suite.mockOperatorService.On("GetOperatorByID", mock.Anything, operatorID).Return(operator, nil).Once()
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, mock.AnythingOfType("dto.CreateTransactionRequest"), "Ana").
		Return(nil, apperrors.ErrInsufficientFunds).Once()

	w, env := suite.doRequest(http.MethodPost, "/api/v1/transactions",
		dto.CreateTransactionRequest{
			SessionID:       1,
			TransactionType: domain.Expense,
			Amount:          decimal.RequireFromString("500"),
			Concept:         "Pago grande",
			CategoryID:      &categoryID,
		},
		suite.generateTestToken(operatorID))

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.False(env.Success)
	suite.NotNil(env.Error)
}

func (suite *SessionHandlerTestSuite) TestListTransactions_CarriesTotalCount() {
	operatorID := uuid.NewString()
	transactions := []domain.Transaction{
		{TransactionID: 2, TransactionNumber: "TR-1002"},
		{TransactionID: 1, TransactionNumber: "TR-1001"},
	}

	suite.mockTransactionService.On("ListTransactions", mock.Anything, mock.AnythingOfType("dto.ListTransactionsParams")).
		Return(transactions, int64(42), nil).Once()

	w, env := suite.doRequest(http.MethodGet, "/api/v1/transactions?limit=2", nil, suite.generateTestToken(operatorID))

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)
	suite.Require().NotNil(env.TotalCount)
	suite.EqualValues(42, *env.TotalCount)
}

func (suite *SessionHandlerTestSuite) TestGetTransaction_NotFound() {
	operatorID := uuid.NewString()

	suite.mockTransactionService.On("GetTransactionByID", mock.Anything, int64(404)).
		Return(nil, apperrors.ErrNotFound).Once()

	w, env := suite.doRequest(http.MethodGet, "/api/v1/transactions/404", nil, suite.generateTestToken(operatorID))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.False(env.Success)
}

func (suite *SessionHandlerTestSuite) TestLogin_Public() {
	operator := &domain.Operator{OperatorID: uuid.NewString(), Name: "Ana", Username: "ana"}

	suite.mockOperatorService.On("Authenticate", mock.Anything, "ana", "correcthorse").Return(operator, nil).Once()

	// No bearer token: login must be reachable without one.
	w, env := suite.doRequest(http.MethodPost, "/auth/login",
		dto.LoginRequest{Username: "ana", Password: "correcthorse"}, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.True(env.Success)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(env.Data, &resp))
	suite.NotEmpty(resp.Token)
	suite.Equal("ana", resp.Operator.Username)
}

func (suite *SessionHandlerTestSuite) TestRegister_FirstOperatorWithoutToken() {
	operator := &domain.Operator{OperatorID: uuid.NewString(), Name: "Ana López", Username: "ana"}

	suite.mockOperatorService.On("RegisterFirstOperator", mock.Anything, mock.MatchedBy(func(req dto.CreateOperatorRequest) bool {
		return req.Username == "ana"
	})).Return(operator, nil).Once()

	// A fresh install has no operators and therefore no tokens; the
	// bootstrap registration must not require one.
	w, env := suite.doRequest(http.MethodPost, "/auth/register",
		dto.CreateOperatorRequest{Name: "Ana López", Username: "ana", Password: "correcthorse"}, "")

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(env.Success)
}

func (suite *SessionHandlerTestSuite) TestRegister_ClosedOnceOperatorExists() {
	suite.mockOperatorService.On("RegisterFirstOperator", mock.Anything, mock.AnythingOfType("dto.CreateOperatorRequest")).
		Return(nil, apperrors.ErrConflict).Once()

	w, env := suite.doRequest(http.MethodPost, "/auth/register",
		dto.CreateOperatorRequest{Name: "Luis", Username: "luis", Password: "correcthorse"}, "")

	suite.Equal(http.StatusConflict, w.Code)
	suite.False(env.Success)
}

func (suite *SessionHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockOperatorService.On("Authenticate", mock.Anything, "ana", "wrong").
		Return(nil, apperrors.ErrNotFound).Once()

	w, env := suite.doRequest(http.MethodPost, "/auth/login",
		dto.LoginRequest{Username: "ana", Password: "wrong"}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.False(env.Success)
}

func TestSessionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SessionHandlerTestSuite))
}
