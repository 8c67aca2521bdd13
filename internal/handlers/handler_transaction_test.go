package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bancsuite/coreledger/internal/apperrors"
	portssvc "github.com/bancsuite/coreledger/internal/core/ports/services"
	"github.com/bancsuite/coreledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock TransactionSvcFacade ---

type MockTransactionSvc struct {
	mock.Mock
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionSvc)(nil)

func (m *MockTransactionSvc) Create(ctx context.Context, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionSvc) Post(ctx context.Context, tranID string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, tranID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionSvc) Verify(ctx context.Context, tranID string, verifierUserID string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, tranID, verifierUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionSvc) Reverse(ctx context.Context, tranID string, reason string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, tranID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionSvc) Get(ctx context.Context, tranID string) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, tranID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTransactionSvc) List(ctx context.Context, page, size int) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func newTestRouter(svc portssvc.TransactionSvcFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registerDecimalValidation()

	r := gin.New()
	h := newTransactionHandler(svc, nil)
	r.POST("/transactions/entry", h.createTransaction)
	r.POST("/transactions/:id/post", h.postTransaction)
	return r
}

const createBody = `{
	"valueDate": "2024-01-15T00:00:00Z",
	"narration": "transfer",
	"lines": [
		{"accountNo": "1234567830011", "drCrFlag": "D", "tranCcy": "BDT", "lcyAmt": "1000.00"},
		{"accountNo": "9110102000017", "drCrFlag": "C", "tranCcy": "BDT", "lcyAmt": "1000.00"}
	]
}`

func TestCreateTransactionHandler(t *testing.T) {
	svc := new(MockTransactionSvc)
	router := newTestRouter(svc)

	svc.On("Create", mock.Anything, mock.Anything).Return(&dto.TransactionResponse{
		TranID: "T20240115000001123", Status: "Entry", Balanced: true,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/entry", strings.NewReader(createBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "T20240115000001123", resp.TranID)
	assert.Equal(t, "Entry", resp.Status)
}

func TestCreateTransactionHandlerBindingError(t *testing.T) {
	svc := new(MockTransactionSvc)
	router := newTestRouter(svc)

	// A single leg fails the min=2 constraint before the service is reached.
	body := `{"valueDate": "2024-01-15T00:00:00Z", "narration": "x", "lines": [
		{"accountNo": "1234567830011", "drCrFlag": "D", "tranCcy": "BDT", "lcyAmt": "1000.00"}
	]}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/transactions/entry", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	var resp dto.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestPostTransactionHandlerErrorEnvelope(t *testing.T) {
	svc := new(MockTransactionSvc)
	router := newTestRouter(svc)

	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: transaction T1", apperrors.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: not in Entry status", apperrors.ErrConflict), http.StatusConflict},
		{fmt.Errorf("%w: unbalanced", apperrors.ErrBusinessRule), http.StatusBadRequest},
	}
	for i, tt := range tests {
		tranID := fmt.Sprintf("T2024011500000%d", i)
		svc.On("Post", mock.Anything, tranID).Return(nil, tt.err).Once()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transactions/"+tranID+"/post", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, "error %v", tt.err)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Message)
		assert.NotEmpty(t, resp.Timestamp)
	}
}
