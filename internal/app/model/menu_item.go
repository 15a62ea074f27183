package model

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem is a sellable dish. BasePrice is in minor currency units; the
// configured price of a cart line adds the selected option modifiers.
type MenuItem struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	StoreID     uint     `gorm:"index;not null" json:"store_id"`
	Store       Store    `gorm:"foreignKey:StoreID" json:"-"`
	CategoryID  uint     `gorm:"index;not null" json:"category_id"`
	Category    Category `gorm:"foreignKey:CategoryID" json:"-"`
	Name        string   `gorm:"not null" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	BasePrice   int64    `gorm:"not null" json:"base_price"`
	ImageURL    string   `json:"image_url"`
	IsAvailable bool     `gorm:"default:true" json:"is_available"`
	SortOrder   int      `gorm:"default:0" json:"sort_order"`

	OptionGroups []OptionGroup `gorm:"foreignKey:MenuItemID" json:"option_groups,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}
