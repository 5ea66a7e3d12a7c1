package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a completed transaction. ProductName and
// PricePerUnit are snapshots taken at sale time; they do not track later
// changes to the product.
type Sale struct {
	BaseModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null" json:"product_id" validate:"uuid_required"`
	Product      *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty" validate:"-"`
	ProductName  string          `gorm:"type:varchar(255);not null" json:"product_name"`
	QuantitySold int             `gorm:"not null" json:"quantity_sold" validate:"required,gt=0"`
	PricePerUnit decimal.Decimal `gorm:"type:numeric;not null" json:"price_per_unit"`
	TotalPrice   decimal.Decimal `gorm:"type:numeric;not null" json:"total_price"`

	SoldByID uuid.UUID `gorm:"type:uuid;not null" json:"sold_by_id"`
	SoldBy   *User     `gorm:"foreignKey:SoldByID" json:"sold_by,omitempty"`
}
