package model

import "github.com/google/uuid"

type Supplier struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Contact string `gorm:"type:varchar(100);not null" json:"contact" validate:"required"`
	Address string `gorm:"type:text" json:"address,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
