package models

import "time"

type Patient struct {
	Base

	UserID string `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name        string     `gorm:"size:100;not null" json:"name"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	Email       string     `gorm:"size:100;uniqueIndex" json:"email"`
	PhoneNumber string     `gorm:"size:20" json:"phone_number"`
}
