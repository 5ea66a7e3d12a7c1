package model

import "github.com/google/uuid"

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
}
