package model

import (
	"time"

	"github.com/google/uuid"
)

// Plan is a static catalog entry. Price is in integer minor units (cents).
type Plan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	MaxUsers  int       `gorm:"not null" json:"max_users"`
	Features  *string   `json:"features"`
	CreatedAt time.Time `json:"created_at"`
}
