package service

import (
	"errors"

	"vyaparpro-api/internal/apperr"
	"vyaparpro-api/internal/model"
	"vyaparpro-api/internal/repository"
	"vyaparpro-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type SupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact" validate:"required"`
	Address string `json:"address"`
}

// CatalogService owns the reference data: categories and suppliers. Both are
// independent lists; deleting one does not touch products referencing it.
type CatalogService interface {
	CreateCategory(req *CategoryRequest, actor *model.User) (*model.Category, error)
	UpdateCategory(id uuid.UUID, req *CategoryRequest, actor *model.User) (*model.Category, error)
	DeleteCategory(id uuid.UUID, actor *model.User) error
	GetCategories() ([]model.Category, error)
	GetCategoryByID(id uuid.UUID) (*model.Category, error)

	CreateSupplier(req *SupplierRequest, actor *model.User) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor *model.User) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID, actor *model.User) error
	GetSuppliers() ([]model.Supplier, error)
	GetSupplierByID(id uuid.UUID) (*model.Supplier, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

func NewCatalogService(cRepo repository.CategoryRepository, sRepo repository.SupplierRepository) CatalogService {
	return &catalogService{categoryRepo: cRepo, supplierRepo: sRepo}
}

func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return apperr.Validation("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return nil
}

func (s *catalogService) CreateCategory(req *CategoryRequest, actor *model.User) (*model.Category, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: &actor.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(category.ID)
}

func (s *catalogService) UpdateCategory(id uuid.UUID, req *CategoryRequest, actor *model.User) (*model.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	category.Name = req.Name
	category.Description = req.Description
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return s.categoryRepo.FindByID(id)
}

func (s *catalogService) DeleteCategory(id uuid.UUID, actor *model.User) error {
	if _, err := s.GetCategoryByID(id); err != nil {
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *catalogService) GetCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) GetCategoryByID(id uuid.UUID) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, err
	}
	return category, nil
}

func (s *catalogService) CreateSupplier(req *SupplierRequest, actor *model.User) (*model.Supplier, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	supplier := &model.Supplier{
		Name:        req.Name,
		Contact:     req.Contact,
		Address:     req.Address,
		CreatedByID: &actor.ID,
	}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return s.supplierRepo.FindByID(supplier.ID)
}

func (s *catalogService) UpdateSupplier(id uuid.UUID, req *SupplierRequest, actor *model.User) (*model.Supplier, error) {
	supplier, err := s.GetSupplierByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	supplier.Name = req.Name
	supplier.Contact = req.Contact
	supplier.Address = req.Address
	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return s.supplierRepo.FindByID(id)
}

func (s *catalogService) DeleteSupplier(id uuid.UUID, actor *model.User) error {
	if _, err := s.GetSupplierByID(id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(id)
}

func (s *catalogService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *catalogService) GetSupplierByID(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Supplier not found")
		}
		return nil, err
	}
	return supplier, nil
}
