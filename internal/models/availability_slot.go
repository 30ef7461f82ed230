package models

import "time"

const (
	SlotModeAvailable   = "available"
	SlotModeBooked      = "booked"
	SlotModeUnavailable = "unavailable"
)

// AvailabilitySlot is a fixed start/end slot used by doctors on standard
// (non-elastic) scheduling.
type AvailabilitySlot struct {
	Base

	DoctorID string `gorm:"type:uuid;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Mode string `gorm:"size:20;default:'available'" json:"mode"`
}
