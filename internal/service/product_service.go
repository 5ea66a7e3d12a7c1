package service

import (
	"errors"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	SKU         string          `json:"sku" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CategoryID  uuid.UUID       `json:"category_id" validate:"uuid_required"`
	SupplierID  uuid.UUID       `json:"supplier_id" validate:"uuid_required"`
	Description string          `json:"description"`
}

type ProductService interface {
	CreateProduct(req *ProductRequest, actor *model.User) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *ProductRequest, actor *model.User) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor *model.User) error
	GetProducts(keyword string) ([]model.Product, error)
	GetProductByID(id uuid.UUID) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository, sRepo repository.SupplierRepository) ProductService {
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		supplierRepo: sRepo,
	}
}

func (s *productService) validate(req *ProductRequest) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	if req.Price.IsNegative() {
		return apperr.Validation("Price must not be negative")
	}
	if req.Quantity < 0 {
		return apperr.Validation("Quantity must not be negative")
	}
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return apperr.NotFound("Category not found")
	}
	if _, err := s.supplierRepo.FindByID(req.SupplierID); err != nil {
		return apperr.NotFound("Supplier not found")
	}
	return nil
}

func (s *productService) CreateProduct(req *ProductRequest, actor *model.User) (*model.Product, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	if existing, _ := s.productRepo.FindBySKU(req.SKU); existing != nil {
		return nil, apperr.Conflict("SKU already exists")
	}

	product := &model.Product{
		Name:        req.Name,
		SKU:         req.SKU,
		Price:       req.Price,
		Quantity:    req.Quantity,
		CategoryID:  req.CategoryID,
		SupplierID:  req.SupplierID,
		Description: req.Description,
		CreatedByID: &actor.ID,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(product.ID)
}

func (s *productService) UpdateProduct(id uuid.UUID, req *ProductRequest, actor *model.User) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}

	if err := s.validate(req); err != nil {
		return nil, err
	}

	if req.SKU != existing.SKU {
		if other, _ := s.productRepo.FindBySKU(req.SKU); other != nil {
			return nil, apperr.Conflict("SKU already exists")
		}
	}

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Price = req.Price
	existing.Quantity = req.Quantity
	existing.CategoryID = req.CategoryID
	existing.SupplierID = req.SupplierID
	existing.Description = req.Description

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	return s.productRepo.FindByID(id)
}

// DeleteProduct does not cascade into the sales ledger: existing sales keep
// their product snapshot and become orphaned references.
func (s *productService) DeleteProduct(id uuid.UUID, actor *model.User) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Product not found")
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) GetProducts(keyword string) ([]model.Product, error) {
	return s.productRepo.Search(keyword)
}

func (s *productService) GetProductByID(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}
