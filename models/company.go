package models

import (
	"time"
)

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"not null;size:200" json:"name"`
	LogoURL   string    `gorm:"size:500" json:"logo_url"`
	Users     []User    `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
}
