package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Nutrition holds the per-recipe nutrition estimate. All four keys are always
// present in the serialized form; absent values are zero.
type Nutrition struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carb_g"`
}

// Value implements the driver.Valuer interface
func (n Nutrition) Value() (driver.Value, error) {
	return json.Marshal(n)
}

// Scan implements the sql.Scanner interface
func (n *Nutrition) Scan(value interface{}) error {
	if value == nil {
		*n = Nutrition{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, n)
}

type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"-"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Nutrition   Nutrition        `gorm:"type:jsonb;not null;default:'{}'" json:"nutrition"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Ingredients == nil {
		r.Ingredients = JSONBStringArray{}
	}
	if r.Steps == nil {
		r.Steps = JSONBStringArray{}
	}
	return nil
}
