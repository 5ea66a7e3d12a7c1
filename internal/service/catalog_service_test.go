package service_test

import (
	"testing"
	"time"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/internal/service"
	"vyaparpro-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (service.CatalogService, *gorm.DB, *model.User) {
	t.Helper()
	db := testutil.OpenDB(t)
	staff := testutil.CreateUser(t, db, "bob", model.RoleStaff)
	catalog := service.NewCatalogService(
		repository.NewCategoryRepo(db),
		repository.NewSupplierRepo(db),
	)
	return catalog, db, staff
}

func TestCategoryCRUD(t *testing.T) {
	catalog, _, staff := newCatalogService(t)

	created, err := catalog.CreateCategory(&service.CategoryRequest{
		Name:        "Electronics",
		Description: "Phones and parts",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, "Electronics", created.Name)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, staff.ID, created.CreatedBy.ID)

	updated, err := catalog.UpdateCategory(created.ID, &service.CategoryRequest{
		Name: "Consumer Electronics",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, "Consumer Electronics", updated.Name)
	assert.Empty(t, updated.Description)

	all, err := catalog.GetCategories()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, catalog.DeleteCategory(created.ID, staff))
	_, err = catalog.GetCategoryByID(created.ID)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestCategoryValidationAndNotFound(t *testing.T) {
	catalog, _, staff := newCatalogService(t)

	_, err := catalog.CreateCategory(&service.CategoryRequest{}, staff)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))

	_, err = catalog.UpdateCategory(uuid.New(), &service.CategoryRequest{Name: "X"}, staff)
	assert.Equal(t, 404, apperr.StatusOf(err))

	err = catalog.DeleteCategory(uuid.New(), staff)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestSupplierCRUD(t *testing.T) {
	catalog, _, staff := newCatalogService(t)

	created, err := catalog.CreateSupplier(&service.SupplierRequest{
		Name:    "Acme",
		Contact: "555-0100",
		Address: "1 Main St",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	// Contact is required.
	_, err = catalog.CreateSupplier(&service.SupplierRequest{Name: "NoContact"}, staff)
	require.Error(t, err)
	assert.Equal(t, 400, apperr.StatusOf(err))

	updated, err := catalog.UpdateSupplier(created.ID, &service.SupplierRequest{
		Name:    "Acme Corp",
		Contact: "555-0200",
	}, staff)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "555-0200", updated.Contact)

	require.NoError(t, catalog.DeleteSupplier(created.ID, staff))
	_, err = catalog.GetSupplierByID(created.ID)
	assert.Equal(t, 404, apperr.StatusOf(err))
}

func TestDeleteCategory_LeavesProductsOrphanedByReference(t *testing.T) {
	catalog, db, staff := newCatalogService(t)

	created, err := catalog.CreateCategory(&service.CategoryRequest{Name: "Doomed"}, staff)
	require.NoError(t, err)
	supplier := testutil.CreateSupplier(t, db, "Acme", staff)
	product := testutil.CreateProduct(t, db, "Widget", "A1", 10, 5, created, supplier, staff)

	require.NoError(t, catalog.DeleteCategory(created.ID, staff))

	// The product row keeps its category id even though the category is gone.
	var kept model.Product
	require.NoError(t, db.First(&kept, "id = ?", product.ID).Error)
	assert.Equal(t, created.ID, kept.CategoryID)
}

func TestGetSalesByDateRange(t *testing.T) {
	db := testutil.OpenDB(t)
	admin := testutil.CreateUser(t, db, "alice", model.RoleAdmin)
	category := testutil.CreateCategory(t, db, "Electronics", admin)
	supplier := testutil.CreateSupplier(t, db, "Acme", admin)
	product := testutil.CreateProduct(t, db, "Widget", "A1", 10, 100, category, supplier, admin)

	sales := service.NewSalesService(
		repository.NewProductRepo(db),
		repository.NewSaleRepo(db),
		db, nil, zerolog.Nop(),
	)

	days := []time.Time{
		time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		sale := &model.Sale{
			BaseModel:    model.BaseModel{CreatedAt: day},
			ProductID:    product.ID,
			ProductName:  product.Name,
			QuantitySold: 1,
			PricePerUnit: product.Price,
			TotalPrice:   product.Price,
			SoldByID:     admin.ID,
		}
		require.NoError(t, db.Create(sale).Error)
	}

	start := time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.March, 9, 23, 59, 59, 0, time.UTC)
	found, err := sales.GetSalesByDateRange(start, end)
	require.NoError(t, err)
	require.Len(t, found, 2)
	// Newest first.
	assert.True(t, found[0].CreatedAt.After(found[1].CreatedAt))
}
