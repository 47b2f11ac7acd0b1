package lifecycle

import (
	"context"
	"testing"
	"time"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkinDate = time.Date(2025, 4, 10, 17, 0, 0, 0, time.UTC)

func TestCheckin_ClosesCheckoutAndRestoresAvailable(t *testing.T) {
	svc, db, _ := setupLifecycleTest(t)
	asset := seedAsset(t, db, "25-000020-GC", models.StatusAvailable)
	emp := seedEmployee(t, db, "Maria Santos")
	ctx := context.Background()

	_, err := svc.Checkout(ctx, CheckoutInput{
		AssetIDs: []string{asset.ID}, EmployeeID: emp.ID, CheckoutDate: checkoutDate, ActionBy: "admin",
	})
	require.NoError(t, err)

	res, err := svc.Checkin(ctx, CheckinInput{
		AssetIDs: []string{asset.ID}, CheckinDate: checkinDate, Condition: strp("Good"), ActionBy: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Checkins, 1)
	assert.Equal(t, "Good", *res.Checkins[0].Condition)

	got := reloadAsset(t, db, asset.ID)
	assert.Equal(t, models.StatusAvailable, got.Status)
	assert.Nil(t, got.IssuedTo)

	var assigneeCleared bool
	for _, l := range historyRows(t, db, asset.ID) {
		if l.EventType == models.EventCheckin && l.Field == "assignee" {
			assert.Equal(t, "Maria Santos", l.ChangeFrom)
			assert.Equal(t, "", l.ChangeTo)
			assigneeCleared = true
		}
	}
	assert.True(t, assigneeCleared)
}

func TestCheckin_ClosesAllActiveCheckouts(t *testing.T) {
	svc, db, _ := setupLifecycleTest(t)
	// inconsistent data: two open employee-bearing checkouts on one asset
	asset := seedAsset(t, db, "25-000021-GC", models.StatusCheckedOut)
	emp := seedEmployee(t, db, "Maria Santos")

	first := models.CheckoutRecord{AssetID: asset.ID, EmployeeID: &emp.ID, CheckoutDate: checkoutDate}
	second := models.CheckoutRecord{AssetID: asset.ID, EmployeeID: &emp.ID, CheckoutDate: checkoutDate.Add(48 * time.Hour)}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	res, err := svc.Checkin(context.Background(), CheckinInput{
		AssetIDs: []string{asset.ID}, CheckinDate: checkinDate, ActionBy: "admin",
	})
	require.NoError(t, err)

	// both closed server-side, one (the latest) returned per asset
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Checkins, 1)
	assert.Equal(t, second.ID, res.Checkins[0].CheckoutID)
	assert.EqualValues(t, 2, countRows(t, db, &models.CheckinRecord{}, "asset_id = ?", asset.ID))

	got := reloadAsset(t, db, asset.ID)
	assert.Equal(t, models.StatusAvailable, got.Status)
}

func TestCheckin_NotCheckedOut(t *testing.T) {
	svc, db, _ := setupLifecycleTest(t)
	asset := seedAsset(t, db, "25-000022-GC", models.StatusAvailable)

	_, err := svc.Checkin(context.Background(), CheckinInput{
		AssetIDs: []string{asset.ID}, CheckinDate: checkinDate, ActionBy: "admin",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "25-000022-GC")
	assert.Contains(t, err.Error(), models.StatusAvailable)
}

func TestCheckin_NoActiveCheckout(t *testing.T) {
	svc, db, _ := setupLifecycleTest(t)
	asset := seedAsset(t, db, "25-000023-GC", models.StatusCheckedOut)
	// an open checkout without an assignee is not closable via check-in
	orphan := models.CheckoutRecord{AssetID: asset.ID, CheckoutDate: checkoutDate}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := svc.Checkin(context.Background(), CheckinInput{
		AssetIDs: []string{asset.ID}, CheckinDate: checkinDate, ActionBy: "admin",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	// the orphan stays open
	assert.Zero(t, countRows(t, db, &models.CheckinRecord{}, ""))
}

func TestCheckin_BatchRollbackOnFailure(t *testing.T) {
	svc, db, _ := setupLifecycleTest(t)
	emp := seedEmployee(t, db, "Maria Santos")
	good := seedAsset(t, db, "25-000024-GC", models.StatusAvailable)
	bad := seedAsset(t, db, "25-000025-GC", models.StatusAvailable)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, CheckoutInput{
		AssetIDs: []string{good.ID}, EmployeeID: emp.ID, CheckoutDate: checkoutDate, ActionBy: "admin",
	})
	require.NoError(t, err)

	// bad is not checked out: the whole batch must roll back
	_, err = svc.Checkin(ctx, CheckinInput{
		AssetIDs: []string{good.ID, bad.ID}, CheckinDate: checkinDate, ActionBy: "admin",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))

	got := reloadAsset(t, db, good.ID)
	assert.Equal(t, models.StatusCheckedOut, got.Status, "good asset must stay checked out")
	assert.Zero(t, countRows(t, db, &models.CheckinRecord{}, ""))
}

func TestCheckin_Validation(t *testing.T) {
	svc, _, _ := setupLifecycleTest(t)
	_, err := svc.Checkin(context.Background(), CheckinInput{})
	require.Error(t, err)
	assert.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}
