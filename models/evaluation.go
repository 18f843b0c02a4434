package models

import (
	"time"
)

// Evaluation is immutable once submitted; there are no update or delete
// operations. CreatedAt doubles as the submission timestamp.
type Evaluation struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time `json:"created_at"`
	CompanyID          uint      `gorm:"not null;index" json:"company_id"`
	SupervisorID       uint      `gorm:"not null;uniqueIndex:idx_eval_supervisor_intern" json:"supervisor_id"`
	Supervisor         *User     `gorm:"belongsTo;foreignKey:SupervisorID;constraint:OnDelete:RESTRICT" json:"supervisor,omitempty"`
	InternID           uint      `gorm:"not null;uniqueIndex:idx_eval_supervisor_intern" json:"intern_id"`
	Intern             *User     `gorm:"foreignKey:InternID;constraint:OnDelete:RESTRICT" json:"intern,omitempty"`
	TechnicalScore     int       `gorm:"not null" json:"technical_score"`
	CommunicationScore int       `gorm:"not null" json:"communication_score"`
	TeamworkScore      int       `gorm:"not null" json:"teamwork_score"`
	Comments           *string   `gorm:"size:2000" json:"comments,omitempty"`
}
