package service_test

import (
	"fmt"
	"testing"
	"time"

	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/internal/service"
	"vyaparpro-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type analyticsFixture struct {
	db        *gorm.DB
	analytics service.AnalyticsService
	admin     *model.User
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	db := testutil.OpenDB(t)
	admin := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	analytics := service.NewAnalyticsService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewSaleRepo(db),
	)
	return &analyticsFixture{db: db, analytics: analytics, admin: admin}
}

// createSale inserts a ledger row directly with a controlled timestamp.
func (f *analyticsFixture) createSale(t *testing.T, product *model.Product, quantity int, createdAt time.Time) *model.Sale {
	t.Helper()
	sale := &model.Sale{
		BaseModel:    model.BaseModel{CreatedAt: createdAt},
		ProductID:    product.ID,
		ProductName:  product.Name,
		QuantitySold: quantity,
		PricePerUnit: product.Price,
		TotalPrice:   product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		SoldByID:     f.admin.ID,
	}
	require.NoError(t, f.db.Create(sale).Error)
	return sale
}

func TestGetSummary(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Electronics", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	// 10*20 + 50*2 = 300 stock value; second product is low on stock
	p1 := testutil.CreateProduct(t, f.db, "Widget", "A1", 10, 20, category, supplier, f.admin)
	p2 := testutil.CreateProduct(t, f.db, "Gadget", "A2", 50, 2, category, supplier, f.admin)

	now := time.Now()
	f.createSale(t, p1, 3, now) // 30
	f.createSale(t, p2, 1, now) // 50

	summary, err := f.analytics.GetSummary()
	require.NoError(t, err)

	assert.EqualValues(t, 2, summary.TotalProducts)
	assert.EqualValues(t, 1, summary.TotalCategories)
	assert.EqualValues(t, 1, summary.TotalSuppliers)
	assert.EqualValues(t, 2, summary.TotalSales)
	assert.True(t, summary.TotalStockValue.Equal(decimal.NewFromInt(300)), "stock value %s", summary.TotalStockValue)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(80)), "revenue %s", summary.TotalRevenue)

	require.Len(t, summary.LowStockProducts, 1)
	assert.Equal(t, "Gadget", summary.LowStockProducts[0].Name)
	require.NotNil(t, summary.LowStockProducts[0].Category)
	assert.Equal(t, "Electronics", summary.LowStockProducts[0].Category.Name)
	require.NotNil(t, summary.LowStockProducts[0].Supplier)
}

func TestGetSummary_LowStockCap(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Misc", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	for i := 0; i < 8; i++ {
		testutil.CreateProduct(t, f.db, fmt.Sprintf("Item %d", i), fmt.Sprintf("SKU%d", i), 10, i, category, supplier, f.admin)
	}

	summary, err := f.analytics.GetSummary()
	require.NoError(t, err)
	assert.Len(t, summary.LowStockProducts, 5)
}

func TestGetMonthlySales_AscendingAndCapped(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Electronics", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	product := testutil.CreateProduct(t, f.db, "Widget", "A1", 10, 1000, category, supplier, f.admin)

	// 14 consecutive months, two sales in the most recent one.
	base := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		f.createSale(t, product, 1, base.AddDate(0, i, 0))
	}
	f.createSale(t, product, 2, base.AddDate(0, 13, 0))

	monthly, err := f.analytics.GetMonthlySales()
	require.NoError(t, err)

	require.Len(t, monthly, 12)
	for i := 1; i < len(monthly); i++ {
		assert.Less(t, monthly[i-1].Month, monthly[i].Month)
	}
	// Oldest two months (2024-01, 2024-02) fall outside the window.
	assert.Equal(t, "2024-03", monthly[0].Month)

	last := monthly[len(monthly)-1]
	assert.Equal(t, "2025-02", last.Month)
	assert.Equal(t, 2, last.Count)
	assert.True(t, last.TotalSales.Equal(decimal.NewFromInt(30)), "total %s", last.TotalSales)
}

func TestGetCategoryDistribution_IncludesEmptyCategories(t *testing.T) {
	f := newAnalyticsFixture(t)

	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	stocked := testutil.CreateCategory(t, f.db, "Stocked", f.admin)
	_ = testutil.CreateCategory(t, f.db, "Empty", f.admin)

	testutil.CreateProduct(t, f.db, "Widget", "A1", 10, 4, stocked, supplier, f.admin)
	testutil.CreateProduct(t, f.db, "Gadget", "A2", 5, 6, stocked, supplier, f.admin)

	distribution, err := f.analytics.GetCategoryDistribution()
	require.NoError(t, err)
	require.Len(t, distribution, 2)

	byName := make(map[string]service.CategoryDistribution)
	for _, d := range distribution {
		byName[d.CategoryName] = d
	}

	stockedEntry := byName["Stocked"]
	assert.Equal(t, 2, stockedEntry.ProductCount)
	assert.Equal(t, 10, stockedEntry.TotalStock)
	assert.True(t, stockedEntry.TotalValue.Equal(decimal.NewFromInt(70)), "value %s", stockedEntry.TotalValue)

	emptyEntry, ok := byName["Empty"]
	require.True(t, ok, "empty category must not be omitted")
	assert.Equal(t, 0, emptyEntry.ProductCount)
	assert.Equal(t, 0, emptyEntry.TotalStock)
	assert.True(t, emptyEntry.TotalValue.Equal(decimal.Zero))
}

func TestGetRecentSales(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Electronics", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	product := testutil.CreateProduct(t, f.db, "Widget", "A1", 10, 1000, category, supplier, f.admin)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 15; i++ {
		f.createSale(t, product, 1, base.Add(time.Duration(i)*time.Minute))
	}

	recent, err := f.analytics.GetRecentSales(5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}

	// Zero limit falls back to the default of 10.
	recent, err = f.analytics.GetRecentSales(0)
	require.NoError(t, err)
	assert.Len(t, recent, 10)
}

func TestGetTopProducts(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Electronics", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)

	now := time.Now()
	products := make([]*model.Product, 12)
	for i := range products {
		products[i] = testutil.CreateProduct(t, f.db, fmt.Sprintf("Item %d", i), fmt.Sprintf("SKU%d", i), 10, 1000, category, supplier, f.admin)
		// Item i sells i+1 units in total.
		f.createSale(t, products[i], i+1, now)
	}

	top, err := f.analytics.GetTopProducts()
	require.NoError(t, err)

	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].TotalQuantitySold, top[i].TotalQuantitySold)
	}
	assert.Equal(t, 12, top[0].TotalQuantitySold)
	require.NotNil(t, top[0].Product)
	assert.Equal(t, "Item 11", top[0].Product.Name)
	assert.Equal(t, "SKU11", top[0].Product.SKU)
	assert.True(t, top[0].TotalRevenue.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 1, top[0].SalesCount)
}

func TestGetTopProducts_LiveJoinShowsRenamedProduct(t *testing.T) {
	f := newAnalyticsFixture(t)

	category := testutil.CreateCategory(t, f.db, "Electronics", f.admin)
	supplier := testutil.CreateSupplier(t, f.db, "Acme", f.admin)
	product := testutil.CreateProduct(t, f.db, "Old Name", "A1", 10, 100, category, supplier, f.admin)

	f.createSale(t, product, 3, time.Now())

	require.NoError(t, f.db.Model(&model.Product{}).
		Where("id = ?", product.ID).
		Update("name", "New Name").Error)

	top, err := f.analytics.GetTopProducts()
	require.NoError(t, err)
	require.Len(t, top, 1)
	require.NotNil(t, top[0].Product)
	assert.Equal(t, "New Name", top[0].Product.Name)
}
