package models

import (
	"time"
)

const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
)

type Task struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompanyID    uint       `gorm:"not null;index" json:"company_id"`
	SupervisorID uint       `gorm:"not null;index" json:"supervisor_id"`
	Supervisor   *User      `gorm:"belongsTo;foreignKey:SupervisorID;constraint:OnDelete:RESTRICT" json:"supervisor,omitempty"`
	InternID     uint       `gorm:"not null;index" json:"intern_id"`
	Intern       *User      `gorm:"foreignKey:InternID;constraint:OnDelete:RESTRICT" json:"intern,omitempty"`
	Title        string     `gorm:"not null;size:200" json:"title"`
	Description  string     `gorm:"size:2000" json:"description"`
	Priority     string     `gorm:"not null;size:20" json:"priority"`
	Category     *string    `gorm:"size:100" json:"category,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       string     `gorm:"not null;size:30;default:PENDING" json:"status"`
}
