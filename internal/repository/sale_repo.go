package repository

import (
	"time"

	"vyaparpro-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	FindPage(keyword string, page, pageSize int) ([]model.Sale, int64, error)
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindAll() ([]model.Sale, error)
	FindRecent(limit int) ([]model.Sale, error)
	FindByDateRange(start, end time.Time) ([]model.Sale, error)
	Count() (int64, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

func (r *saleRepo) preload(q *gorm.DB) *gorm.DB {
	return q.Preload("Product").Preload("SoldBy")
}

// FindPage returns one page of sales newest-first, optionally filtered by a
// case-insensitive match on the snapshotted product name.
func (r *saleRepo) FindPage(keyword string, page, pageSize int) ([]model.Sale, int64, error) {
	if page < 1 {
		page = 1
	}

	q := r.db.Model(&model.Sale{})
	if keyword != "" {
		q = q.Where("LOWER(product_name) LIKE LOWER(?)", "%"+keyword+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	err := r.preload(q).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(pageSize * (page - 1)).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	if err := r.preload(r.db).First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepo) FindAll() ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindRecent(limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.preload(r.db).
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByDateRange(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.preload(r.db).
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Sale{}).Count(&count).Error
	return count, err
}
