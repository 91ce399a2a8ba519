package ledger

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (_m *MockLedgerRepository) RecordPayment(ctx context.Context, accountID int64, amountPaid float64, paymentDate time.Time) (*Payment, error) {
	ret := _m.Called(ctx, accountID, amountPaid, paymentDate)

	var r0 *Payment
	if rf, ok := ret.Get(0).(func(context.Context, int64, float64, time.Time) *Payment); ok {
		r0 = rf(ctx, accountID, amountPaid, paymentDate)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Payment)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64, float64, time.Time) error); ok {
		r1 = rf(ctx, accountID, amountPaid, paymentDate)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockLedgerRepository) FindByAccountID(ctx context.Context, accountID int64) ([]*Payment, error) {
	ret := _m.Called(ctx, accountID)

	var r0 []*Payment
	if rf, ok := ret.Get(0).(func(context.Context, int64) []*Payment); ok {
		r0 = rf(ctx, accountID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Payment)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, accountID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}
