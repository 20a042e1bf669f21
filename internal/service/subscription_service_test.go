package service

import (
	"context"
	"errors"
	"testing"

	"Project_Reviews/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBilling struct {
	active map[string]bool
	calls  int
	err    error
}

func (f *fakeBilling) HasActiveSubscription(_ context.Context, customerID string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.active[customerID], nil
}

func (f *fakeBilling) CheckoutURL(_ context.Context, customerID string) (string, error) {
	return "https://billing.example.com/checkout/" + customerID, nil
}

func seedUser(t *testing.T, db *gorm.DB, customerID string) *model.User {
	t.Helper()
	u := &model.User{
		Username: "user-" + customerID, Password: "x",
		Email: customerID + "@example.com", BillingCustomerID: customerID,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestIsActive(t *testing.T) {
	db := openTestDB(t)
	billing := &fakeBilling{active: map[string]bool{"cus_1": true}}
	svc := NewSubscriptionService(db, billing)
	ctx := context.Background()

	sub := seedUser(t, db, "cus_1")
	free := seedUser(t, db, "cus_2")

	active, err := svc.IsActive(ctx, sub.ID)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = svc.IsActive(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestIsActiveNoBillingAccount(t *testing.T) {
	db := openTestDB(t)
	billing := &fakeBilling{}
	svc := NewSubscriptionService(db, billing)

	u := &model.User{Username: "nolink", Password: "x", Email: "nolink@example.com"}
	require.NoError(t, db.Create(u).Error)

	active, err := svc.IsActive(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, active)
	// 没绑账户不打计费系统
	assert.Equal(t, 0, billing.calls)
}

func TestIsActiveBillingDown(t *testing.T) {
	db := openTestDB(t)
	billing := &fakeBilling{err: errors.New("billing down")}
	svc := NewSubscriptionService(db, billing)
	u := seedUser(t, db, "cus_9")

	// 计费系统挂了保守返回错误，调用方拒绝访问
	_, err := svc.IsActive(context.Background(), u.ID)
	assert.Error(t, err)
}

func TestCheckoutURL(t *testing.T) {
	db := openTestDB(t)
	svc := NewSubscriptionService(db, &fakeBilling{})
	u := seedUser(t, db, "cus_3")

	url, err := svc.CheckoutURL(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Contains(t, url, "cus_3")

	nolink := &model.User{Username: "nolink2", Password: "x", Email: "nolink2@example.com"}
	require.NoError(t, db.Create(nolink).Error)
	_, err = svc.CheckoutURL(context.Background(), nolink.ID)
	assert.ErrorIs(t, err, ErrNoBillingAccount)
}
