package models

// RecurringTemplate is a weekly-recurring schedule pattern that
// materializes DaySchedule rows into the future.
type RecurringTemplate struct {
	Base

	DoctorID string `gorm:"type:uuid;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"doctor"`

	Name      string `gorm:"size:100;not null" json:"name"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	SlotDuration    int `gorm:"not null" json:"slot_duration"`
	BufferTime      int `gorm:"default:0" json:"buffer_time"`
	MaxAppointments int `json:"max_appointments"`

	// Weekday numbers this template applies to (0=Sunday..6=Saturday).
	DaysOfWeek []int `gorm:"serializer:json" json:"days_of_week"`

	WeeksAhead     int  `gorm:"default:4" json:"weeks_ahead"`
	IsActive       bool `gorm:"default:true" json:"is_active"`
	AllowOverrides bool `gorm:"default:true" json:"allow_overrides"`
	AutoGenerate   bool `gorm:"default:true" json:"auto_generate"`

	LastGeneratedDate string `gorm:"size:10" json:"last_generated_date"`
}

// AppliesTo reports whether the template covers the given weekday number.
func (t *RecurringTemplate) AppliesTo(weekday int) bool {
	for _, d := range t.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}
