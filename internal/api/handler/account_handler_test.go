package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"isp-ledger/internal/domain/account"
	"isp-ledger/internal/domain/ledger"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type MockAccountService struct {
	mock.Mock
}

func (_m *MockAccountService) CreateAccount(ctx context.Context, params account.AccountParams) (*account.Account, error) {
	ret := _m.Called(ctx, params)

	var r0 *account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*account.Account)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) GetAccount(ctx context.Context, accountID int64) (*account.Account, error) {
	ret := _m.Called(ctx, accountID)

	var r0 *account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*account.Account)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) ListAccounts(ctx context.Context, sortByRenewal bool) ([]*account.Account, error) {
	ret := _m.Called(ctx, sortByRenewal)

	var r0 []*account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*account.Account)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) UpdateAccount(ctx context.Context, accountID int64, params account.AccountParams) (*account.Account, error) {
	ret := _m.Called(ctx, accountID, params)

	var r0 *account.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*account.Account)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) DeleteAccount(ctx context.Context, accountID int64) error {
	ret := _m.Called(ctx, accountID)
	return ret.Error(0)
}

func (_m *MockAccountService) ListRenewals(ctx context.Context, today time.Time, windowDays int) (*account.RenewalSchedule, error) {
	ret := _m.Called(ctx, today, windowDays)

	var r0 *account.RenewalSchedule
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*account.RenewalSchedule)
	}
	return r0, ret.Error(1)
}

func (_m *MockAccountService) SweepOverdueAccounts(ctx context.Context, today time.Time) (account.SweepResult, error) {
	ret := _m.Called(ctx, today)
	return ret.Get(0).(account.SweepResult), ret.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (_m *MockLedgerService) RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*ledger.Payment, error) {
	ret := _m.Called(ctx, accountID, amountPaid, paymentDate)

	var r0 *ledger.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ledger.Payment)
	}
	return r0, ret.Error(1)
}

func (_m *MockLedgerService) ListPaymentHistory(ctx context.Context, accountID int64) ([]*ledger.Payment, error) {
	ret := _m.Called(ctx, accountID)

	var r0 []*ledger.Payment
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*ledger.Payment)
	}
	return r0, ret.Error(1)
}

// newAccountRouter mounts the handler on a real chi router so URL params
// resolve the same way they do in production.
func newAccountRouter(h *AccountHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/accounts", h.CreateAccount)
	r.Get("/accounts", h.ListAccounts)
	r.Get("/accounts/renewals", h.ListRenewals)
	r.Post("/accounts/rollover", h.TriggerRollover)
	r.Get("/accounts/{accountID}", h.GetAccount)
	r.Put("/accounts/{accountID}", h.UpdateAccount)
	r.Delete("/accounts/{accountID}", h.DeleteAccount)
	return r
}

func TestCreateAccountHandler(t *testing.T) {
	t.Run("creates account and returns 201", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		renewal := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		created := &account.Account{
			AccountID:   1,
			Name:        "John Doe",
			PlanDetails: "50Mbps",
			MonthlyCost: 500,
			RenewalDate: &renewal,
		}
		mockSvc.On("CreateAccount", mock.Anything, mock.MatchedBy(func(p account.AccountParams) bool {
			return p.Name == "John Doe" && p.MonthlyCost == 500 && p.RenewalDate != nil
		})).Return(created, nil).Once()

		body := `{"name":"John Doe","planDetails":"50Mbps","monthlyCost":500,"renewalDate":"2025-07-01"}`
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, float64(1), resp["accountId"])
		assert.Equal(t, "500.00", resp["monthlyCost"])
		assert.Equal(t, "2025-07-01", resp["renewalDate"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("rejects empty name with 400", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		body := `{"name":"","monthlyCost":500}`
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed renewal date with 400", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		body := `{"name":"John","monthlyCost":500,"renewalDate":"01-07-2025"}`
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})
}

func TestGetAccountHandler(t *testing.T) {
	t.Run("returns account", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("GetAccount", mock.Anything, int64(12)).
			Return(&account.Account{AccountID: 12, Name: "John Doe", Mobile: "987"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/accounts/12", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"mobile":"987"`)
		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("GetAccount", mock.Anything, int64(999)).
			Return(nil, account.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/accounts/999", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 400 for non-numeric id", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		req := httptest.NewRequest(http.MethodGet, "/accounts/abc", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	})
}

func TestListAccountsHandler(t *testing.T) {
	t.Run("lists accounts in id order", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("ListAccounts", mock.Anything, false).
			Return([]*account.Account{{AccountID: 1}, {AccountID: 2}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("passes renewal sort flag", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("ListAccounts", mock.Anything, true).
			Return([]*account.Account{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/accounts?sort=renewal", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateAccountHandler(t *testing.T) {
	t.Run("updates account", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		updated := &account.Account{AccountID: 12, Name: "Jane Roe", MonthlyCost: 800}
		mockSvc.On("UpdateAccount", mock.Anything, int64(12), mock.Anything).
			Return(updated, nil).Once()

		body := `{"name":"Jane Roe","monthlyCost":800}`
		req := httptest.NewRequest(http.MethodPut, "/accounts/12", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Jane Roe")
		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 404 for unknown account", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("UpdateAccount", mock.Anything, int64(999), mock.Anything).
			Return(nil, account.ErrNotFound).Once()

		body := `{"name":"Jane Roe","monthlyCost":800}`
		req := httptest.NewRequest(http.MethodPut, "/accounts/999", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteAccountHandler(t *testing.T) {
	t.Run("returns 204 even for unknown account", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("DeleteAccount", mock.Anything, int64(999)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/accounts/999", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 500 on repository failure", func(t *testing.T) {
		mockSvc := new(MockAccountService)
		h := NewAccountHandler(mockSvc, 10, testLogger)

		mockSvc.On("DeleteAccount", mock.Anything, int64(12)).
			Return(errors.New("connection reset")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/accounts/12", nil)
		rec := httptest.NewRecorder()

		newAccountRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListRenewalsHandler(t *testing.T) {
	mockSvc := new(MockAccountService)
	h := NewAccountHandler(mockSvc, 10, testLogger)

	soon := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	mockSvc.On("ListRenewals", mock.Anything, mock.AnythingOfType("time.Time"), 10).
		Return(&account.RenewalSchedule{
			Upcoming: []*account.Account{{AccountID: 1, RenewalDate: &soon}},
			PastDue:  []*account.Account{},
		}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/accounts/renewals", nil)
	rec := httptest.NewRecorder()

	newAccountRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"upcoming"`)
	assert.Contains(t, rec.Body.String(), `"pastDue"`)
	mockSvc.AssertExpectations(t)
}

func TestTriggerRolloverHandler(t *testing.T) {
	mockSvc := new(MockAccountService)
	h := NewAccountHandler(mockSvc, 10, testLogger)

	mockSvc.On("SweepOverdueAccounts", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(account.SweepResult{Scanned: 4, RolledOver: 2, CyclesAccrued: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/accounts/rollover", nil)
	rec := httptest.NewRecorder()

	newAccountRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rolledOver":2`)
	mockSvc.AssertExpectations(t)
}
