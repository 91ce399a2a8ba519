package account

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (_m *MockAccountRepository) Save(ctx context.Context, acct *Account) error {
	ret := _m.Called(ctx, acct)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, *Account) error); ok {
		r0 = rf(ctx, acct)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockAccountRepository) FindByID(ctx context.Context, accountID int64) (*Account, error) {
	ret := _m.Called(ctx, accountID)

	var r0 *Account
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Account); ok {
		r0 = rf(ctx, accountID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Account)
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

func (_m *MockAccountRepository) FindAll(ctx context.Context) ([]*Account, error) {
	ret := _m.Called(ctx)

	var r0 []*Account
	if rf, ok := ret.Get(0).(func(context.Context) []*Account); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*Account)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockAccountRepository) Delete(ctx context.Context, accountID int64) error {
	ret := _m.Called(ctx, accountID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) error); ok {
		r0 = rf(ctx, accountID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
