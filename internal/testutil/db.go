// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"vyaparpro-api/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq int64

// OpenDB returns an isolated in-memory sqlite database with the full schema
// migrated. Each call gets its own database.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.Supplier{},
		&model.Product{}, &model.Sale{},
	))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, name string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", name),
		Role:  role,
	}
	require.NoError(t, user.SetPassword("secret123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string, createdBy *model.User) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, CreatedByID: &createdBy.ID}
	require.NoError(t, db.Create(category).Error)
	return category
}

func CreateSupplier(t *testing.T, db *gorm.DB, name string, createdBy *model.User) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{Name: name, Contact: "555-0100", CreatedByID: &createdBy.ID}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func CreateProduct(t *testing.T, db *gorm.DB, name, sku string, price int64, quantity int, category *model.Category, supplier *model.Supplier, createdBy *model.User) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:        name,
		SKU:         sku,
		Price:       decimal.NewFromInt(price),
		Quantity:    quantity,
		CategoryID:  category.ID,
		SupplierID:  supplier.ID,
		CreatedByID: &createdBy.ID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
