package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringSlice stores an ordered list of strings as a jsonb column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

type Product struct {
	ID             uint        `json:"id" gorm:"primaryKey"`
	Name           string      `json:"name" gorm:"not null"`
	Description    string      `json:"description" gorm:"type:text"`
	Price          int64       `json:"price" gorm:"not null"`
	Currency       string      `json:"currency" gorm:"default:'NGN'"`
	Images         StringSlice `json:"images" gorm:"type:jsonb"`
	Category       string      `json:"category"`
	InventoryCount int         `json:"inventory_count" gorm:"default:0"`
	IsVisible      bool        `json:"is_visible" gorm:"default:true"`
	IsSoldOut      bool        `json:"is_sold_out" gorm:"default:false"`
	Slug           string      `json:"slug" gorm:"unique;not null"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// FirstImage returns the primary product image, or "" when none is set.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"unique;not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	IsVisible   bool      `json:"is_visible" gorm:"default:true"`
	SortOrder   int       `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
}
