package models

import (
	"time"
)

// User represents a patient or doctor account.
type User struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Email          string    `gorm:"column:email;size:255;not null;unique;index" json:"email"`
	Password       string    `gorm:"column:password;size:255;not null" json:"-"`
	Role           string    `gorm:"column:role;check:role IN ('patient', 'doctor');not null;index" json:"role"`
	Specialization string    `gorm:"column:specialization" json:"specialization,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Profile is the user data safe to return in API responses.
type Profile struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

// Sanitize strips credentials from a user record.
func (u *User) Sanitize() Profile {
	return Profile{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		Specialization: u.Specialization,
	}
}
