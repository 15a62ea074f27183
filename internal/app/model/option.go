package model

import (
	"time"

	"gorm.io/gorm"
)

type OptionGroupType string

const (
	GroupSingleSelect   OptionGroupType = "single_select"
	GroupMultiSelect    OptionGroupType = "multi_select"
	GroupQuantitySelect OptionGroupType = "quantity_select"
)

// OptionGroup attaches a set of choices to a menu item. MaxSelections
// and the aggregate quantity bounds are nullable, meaning unbounded.
type OptionGroup struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	MenuItemID    uint            `gorm:"index;not null" json:"menu_item_id"`
	Name          string          `gorm:"not null" json:"name"`
	Type          OptionGroupType `gorm:"type:varchar(20);not null" json:"type"`
	IsRequired    bool            `gorm:"default:false" json:"is_required"`
	MinSelections int             `gorm:"default:0" json:"min_selections"`
	MaxSelections *int            `json:"max_selections"`

	// Number of selected units charged at zero, cheapest first.
	NumFreeOptions int `gorm:"default:0" json:"num_free_options"`

	// Bounds on the total unit count across all choices; quantity_select only.
	AggregateMinQuantity *int `json:"aggregate_min_quantity"`
	AggregateMaxQuantity *int `json:"aggregate_max_quantity"`

	SortOrder int      `gorm:"default:0" json:"sort_order"`
	Choices   []Choice `gorm:"foreignKey:OptionGroupID" json:"choices,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OptionGroup) TableName() string {
	return "option_groups"
}

// Choice is one selectable option. PriceModifier may be negative
// (a discount). Min/MaxQuantity only apply inside quantity_select groups.
type Choice struct {
	ID            uint   `gorm:"primarykey" json:"id"`
	OptionGroupID uint   `gorm:"index;not null" json:"option_group_id"`
	Name          string `gorm:"not null" json:"name"`
	PriceModifier int64  `gorm:"default:0" json:"price_modifier"`
	IsDefault     bool   `gorm:"default:false" json:"is_default"`
	IsAvailable   bool   `gorm:"default:true" json:"is_available"`
	MinQuantity   int    `gorm:"default:0" json:"min_quantity"`
	MaxQuantity   *int   `json:"max_quantity"`
	SortOrder     int    `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Choice) TableName() string {
	return "choices"
}
