package inventory

import (
	"context"
	"testing"

	"assettrack-backend/internal/apperr"
	"assettrack-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInventoryTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.InventoryItem{},
		&models.StockTransaction{},
	))
	return &Service{DB: db}, db
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seedItem(t *testing.T, svc *Service, code, name string, stock string) *models.InventoryItem {
	item, err := svc.CreateItem(context.Background(), ItemCreateInput{
		ItemCode:     code,
		Name:         name,
		CurrentStock: decp(stock),
		ActionBy:     "admin",
	})
	require.NoError(t, err)
	return item
}

func TestCreateItemOpeningStockLedgered(t *testing.T) {
	svc, db := setupInventoryTest(t)

	item, err := svc.CreateItem(context.Background(), ItemCreateInput{
		ItemCode:     "INV-001",
		Name:         "Thermal paste",
		CurrentStock: decp("12"),
		UnitCost:     decp("4.50"),
		ActionBy:     "admin",
	})
	require.NoError(t, err)
	require.True(t, item.CurrentStock.Equal(decimal.RequireFromString("12")))

	var entries []models.StockTransaction
	require.NoError(t, db.Where("item_id = ?", item.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, models.StockIn, entries[0].Type)
	require.NotNil(t, entries[0].Notes)
	require.Equal(t, "Initial stock", *entries[0].Notes)
	require.True(t, entries[0].Quantity.Equal(decimal.RequireFromString("12")))
}

func TestCreateItemZeroStockNoLedgerEntry(t *testing.T) {
	svc, db := setupInventoryTest(t)

	item, err := svc.CreateItem(context.Background(), ItemCreateInput{
		ItemCode: "INV-002",
		Name:     "SATA cable",
		ActionBy: "admin",
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.StockTransaction{}).Where("item_id = ?", item.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateItemValidation(t *testing.T) {
	svc, _ := setupInventoryTest(t)

	_, err := svc.CreateItem(context.Background(), ItemCreateInput{ActionBy: "admin"})
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	require.Contains(t, e.Details, "itemCode")
	require.Contains(t, e.Details, "name")
}

func TestCreateItemDuplicateCode(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	seedItem(t, svc, "INV-001", "Thermal paste", "3")

	_, err := svc.CreateItem(context.Background(), ItemCreateInput{
		ItemCode: "INV-001",
		Name:     "Another paste",
		ActionBy: "admin",
	})
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestGetItemByCode(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	seeded := seedItem(t, svc, "INV-001", "Thermal paste", "5")

	detail, err := svc.GetItem(context.Background(), "INV-001")
	require.NoError(t, err)
	require.Equal(t, seeded.ID, detail.Item.ID)
	require.EqualValues(t, 1, detail.TransactionCount)
	require.Len(t, detail.Transactions, 1)

	byID, err := svc.GetItem(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, byID.Item.ID)
}

func TestGetItemNotFound(t *testing.T) {
	svc, _ := setupInventoryTest(t)

	_, err := svc.GetItem(context.Background(), "NO-SUCH")
	require.Error(t, err)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListItemsLowStock(t *testing.T) {
	svc, db := setupInventoryTest(t)
	low := seedItem(t, svc, "INV-001", "Thermal paste", "2")
	require.NoError(t, db.Model(low).Update("min_stock_level", decimal.RequireFromString("5")).Error)
	ok := seedItem(t, svc, "INV-002", "SATA cable", "50")
	require.NoError(t, db.Model(ok).Update("min_stock_level", decimal.RequireFromString("5")).Error)
	seedItem(t, svc, "INV-003", "HDMI cable", "1")

	res, err := svc.ListItems(context.Background(), ItemListInput{LowStock: true})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	require.Equal(t, "INV-001", res.Items[0].ItemCode)
}

func TestListItemsSearchAndDeleted(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	paste := seedItem(t, svc, "INV-001", "Thermal paste", "2")
	seedItem(t, svc, "INV-002", "SATA cable", "3")
	require.NoError(t, svc.DeleteItem(context.Background(), paste.ID, false))

	res, err := svc.ListItems(context.Background(), ItemListInput{Search: "paste"})
	require.NoError(t, err)
	require.Empty(t, res.Items)

	res, err = svc.ListItems(context.Background(), ItemListInput{Search: "paste", IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
}

func TestUpdateItemDuplicateCode(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	seedItem(t, svc, "INV-001", "Thermal paste", "2")
	other := seedItem(t, svc, "INV-002", "SATA cable", "3")

	code := "INV-001"
	_, err := svc.UpdateItem(context.Background(), other.ID, ItemUpdateInput{ItemCode: &code})
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestUpdateItemAppliesFields(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	item := seedItem(t, svc, "INV-001", "Thermal paste", "2")

	name := "Thermal paste 5g"
	supplier := "PC Parts Inc"
	updated, err := svc.UpdateItem(context.Background(), item.ID, ItemUpdateInput{
		Name:     &name,
		Supplier: &supplier,
		UnitCost: decp("3.25"),
	})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, supplier, *updated.Supplier)
	require.True(t, updated.UnitCost.Equal(decimal.RequireFromString("3.25")))
	require.Equal(t, "INV-001", updated.ItemCode)
}

func TestDeleteAndRestoreItem(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	item := seedItem(t, svc, "INV-001", "Thermal paste", "2")

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID, false))
	_, err := svc.GetItem(context.Background(), item.ID)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	restored, err := svc.RestoreItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)
	require.Nil(t, restored.DeletedAt)

	_, err = svc.RestoreItem(context.Background(), item.ID)
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}

func TestDeleteItemPermanent(t *testing.T) {
	svc, db := setupInventoryTest(t)
	item := seedItem(t, svc, "INV-001", "Thermal paste", "2")

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID, true))

	var count int64
	require.NoError(t, db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).Count(&count).Error)
	require.Zero(t, count)
}

func TestBulkRestoreItems(t *testing.T) {
	svc, _ := setupInventoryTest(t)
	a := seedItem(t, svc, "INV-001", "Thermal paste", "2")
	b := seedItem(t, svc, "INV-002", "SATA cable", "3")
	live := seedItem(t, svc, "INV-003", "HDMI cable", "1")
	require.NoError(t, svc.DeleteItem(context.Background(), a.ID, false))
	require.NoError(t, svc.DeleteItem(context.Background(), b.ID, false))

	restored, err := svc.BulkRestoreItems(context.Background(), []string{a.ID, b.ID, live.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, restored)

	_, err = svc.BulkRestoreItems(context.Background(), nil)
	require.Error(t, err)
	require.Equal(t, apperr.KindBadRequest, apperr.KindOf(err))
}
