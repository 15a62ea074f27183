package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	OwnerID     uint   `gorm:"index;not null" json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"-"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"` // URL identifier, generated from the name
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:text" json:"address"`
	PhoneNumber string `gorm:"type:varchar(30)" json:"phone_number"`
	ImageURL    string `json:"image_url"`
	Timezone    string `gorm:"type:varchar(64);default:'UTC'" json:"timezone"` // IANA name
	Currency    string `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	IsActive    bool   `gorm:"default:true;index" json:"is_active"`

	Hours    []StoreHour    `gorm:"foreignKey:StoreID" json:"hours,omitempty"`
	Closures []StoreClosure `gorm:"foreignKey:StoreID" json:"closures,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreHour is one weekly opening period. A close time earlier than the
// open time means the period wraps past midnight.
type StoreHour struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	StoreID   uint   `gorm:"index;not null" json:"store_id"`
	DayOfWeek int    `gorm:"not null" json:"day_of_week"`            // 0 = Sunday
	OpenTime  string `gorm:"type:varchar(5);not null" json:"open_time"`  // "HH:MM"
	CloseTime string `gorm:"type:varchar(5);not null" json:"close_time"` // "HH:MM"
}

func (StoreHour) TableName() string {
	return "store_hours"
}

// StoreClosure marks an inclusive range of local calendar dates on which
// the store is closed regardless of its weekly hours.
type StoreClosure struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   uint      `gorm:"index;not null" json:"store_id"`
	StartDate string    `gorm:"type:varchar(10);not null" json:"start_date"` // "YYYY-MM-DD"
	EndDate   string    `gorm:"type:varchar(10);not null" json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

func (StoreClosure) TableName() string {
	return "store_closures"
}

// generateSlug builds a URL slug from the store name.
func generateSlug(name string) string {
	slug := name

	// Keep letters, digits and hyphens only
	reg := regexp.MustCompile(`[^\p{L}\p{N}-]+`)
	slug = reg.ReplaceAllString(slug, "-")

	reg = regexp.MustCompile(`-+`)
	slug = reg.ReplaceAllString(slug, "-")

	slug = strings.Trim(slug, "-")
	slug = strings.ToLower(slug)

	return slug
}

// BeforeCreate fills in a unique slug when none was given.
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.Slug == "" {
		baseSlug := generateSlug(s.Name)
		slug := baseSlug

		counter := 1
		for {
			var count int64
			if err := tx.Model(&Store{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				break
			}

			counter++
			slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		}

		s.Slug = slug
	}
	return nil
}

// BeforeUpdate regenerates the slug when the store was renamed.
func (s *Store) BeforeUpdate(tx *gorm.DB) error {
	var oldStore Store
	if err := tx.First(&oldStore, s.ID).Error; err != nil {
		return err
	}

	if s.Name != oldStore.Name {
		baseSlug := generateSlug(s.Name)
		slug := baseSlug

		counter := 1
		for {
			var count int64
			if err := tx.Model(&Store{}).Where("slug = ? AND id != ?", slug, s.ID).Count(&count).Error; err != nil {
				return err
			}

			if count == 0 {
				break
			}

			counter++
			slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		}

		s.Slug = slug
	}
	return nil
}
