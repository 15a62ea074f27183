package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicePoint is a physical ordering location inside a store, typically
// a table or a pickup counter. Code is the opaque identifier customers
// reach the storefront through.
type ServicePoint struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	StoreID   uint           `gorm:"index;not null" json:"store_id"`
	Store     Store          `gorm:"foreignKey:StoreID" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;type:varchar(36)" json:"code"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ServicePoint) TableName() string {
	return "service_points"
}

// BeforeCreate assigns a code when none was given.
func (p *ServicePoint) BeforeCreate(tx *gorm.DB) error {
	if p.Code == "" {
		p.Code = uuid.NewString()
	}
	return nil
}
