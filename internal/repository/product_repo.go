package repository

import (
	"vyaparpro-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Search(keyword string) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByIDs(ids []uuid.UUID) ([]model.Product, error)
	FindAll() ([]model.Product, error)
	FindLowStock(threshold, limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error
	Count() (int64, error)
	// DecrementStock atomically subtracts quantity iff enough stock remains.
	// Returns false when the guard rejected the update.
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error)
	RestoreStock(tx *gorm.DB, id uuid.UUID, quantity int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

// Search matches name or sku case-insensitively. Empty keyword returns all.
func (r *productRepo) Search(keyword string) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Preload("Category").Preload("Supplier").Preload("CreatedBy").
		Order("created_at DESC")
	if keyword != "" {
		pattern := "%" + keyword + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)", pattern, pattern)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").Preload("CreatedBy").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByIDs(ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepo) FindLowStock(threshold, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Preload("Supplier").
		Where("quantity < ?", threshold).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) (bool, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity >= ?", id, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productRepo) RestoreStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error
}
