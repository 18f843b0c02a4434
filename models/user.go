package models

import (
	"crypto/rand"
	"math/big"
	"time"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleIntern     Role = "INTERN"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleSupervisor || r == RoleIntern
}

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompanyID    uint       `gorm:"not null;index" json:"company_id"`
	Company      *Company   `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	FullName     string     `gorm:"not null;size:200" json:"full_name"`
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         Role       `gorm:"not null;size:20" json:"role"`
	Domain       *string    `gorm:"size:100" json:"domain,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	SupervisorID *uint      `gorm:"index" json:"supervisor_id,omitempty"`
	Supervisor   *User      `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
	Supervisees  []User     `gorm:"foreignKey:SupervisorID" json:"supervisees,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor
}

func (u *User) IsIntern() bool {
	return u.Role == RoleIntern
}

const tempPasswordLength = 16

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTempPassword returns a random password for admin-created accounts.
// The plaintext is mailed to the new user once and only the bcrypt digest is
// stored.
func GenerateTempPassword() (string, error) {
	buf := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
