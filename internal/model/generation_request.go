package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBMap stores an arbitrary JSON object in a JSONB column.
type JSONBMap map[string]interface{}

// Value implements the driver.Valuer interface
func (m JSONBMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONBMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBMap{}
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

	return json.Unmarshal(bytes, m)
}

// GenerationRequest is the append-only audit record of one suggestion
// attempt. The output is a denormalized copy of what was returned, not a
// reference into the recipes table. UserID is nullable so the record
// survives user deletion.
type GenerationRequest struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt        time.Time        `json:"created_at"`
	UserID           *uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User             *User            `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	InputIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"input_ingredients"`
	Output           JSONBMap         `gorm:"type:jsonb;not null;default:'{}'" json:"output"`
	Status           string           `gorm:"size:20;not null;default:'ok'" json:"status"`
}

// Generation request statuses.
const (
	GenerationStatusOK       = "ok"
	GenerationStatusFallback = "fallback"
	GenerationStatusFailed   = "failed"
)

func (g *GenerationRequest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
