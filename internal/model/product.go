package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Price       decimal.Decimal `gorm:"type:numeric;not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"`
	Description string          `gorm:"type:text" json:"description,omitempty"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null" json:"category_id" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty" validate:"-"`
	SupplierID uuid.UUID `gorm:"type:uuid;not null" json:"supplier_id" validate:"uuid_required"`
	Supplier   *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty" validate:"-"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
