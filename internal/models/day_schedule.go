package models

// DaySchedule is a doctor's bookable window for one calendar date. It is
// either materialized from a recurring template or created directly as a
// date override.
type DaySchedule struct {
	Base

	DoctorID string `gorm:"type:uuid;index:idx_day_schedule_doctor_date" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	Date      string `gorm:"size:10;index:idx_day_schedule_doctor_date" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5;not null" json:"start_time"`                      // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`                        // HH:MM

	SlotDuration    int `gorm:"not null" json:"slot_duration"` // minutes
	BufferTime      int `gorm:"default:0" json:"buffer_time"`  // minutes
	MaxAppointments int `json:"max_appointments"`              // 0 = uncapped

	RecurringTemplateID *string `gorm:"type:uuid;index" json:"recurring_template_id"`
	IsOverride          bool    `gorm:"default:false" json:"is_override"`
	OverrideReason      string  `gorm:"size:255" json:"override_reason"`
}

// IsManualOverride reports whether this schedule was created directly
// rather than materialized from a template. Manual schedules take priority
// when a date has several rows.
func (s *DaySchedule) IsManualOverride() bool {
	return s.RecurringTemplateID == nil
}
