package models

const (
	SchedulingStandard = "standard"
	SchedulingElastic  = "elastic"
)

type Doctor struct {
	Base

	UserID string `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Name           string `gorm:"size:100;not null" json:"name"`
	Specialization string `gorm:"size:100" json:"specialization"`
	Email          string `gorm:"size:100;uniqueIndex" json:"email"`

	SchedulingType string `gorm:"size:20;default:'standard'" json:"scheduling_type"`
}
