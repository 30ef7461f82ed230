package models

// Appointment references exactly one booking mode at a time: a traditional
// AvailabilitySlot, or a DaySchedule plus explicit (date, start, end).
// Switching modes during a reschedule clears the other mode's fields.
type Appointment struct {
	Base

	PatientID string  `gorm:"type:uuid;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID string `gorm:"type:uuid;index:idx_appointment_doctor_date" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	SlotID *string           `gorm:"type:uuid" json:"slot_id"`
	Slot   *AvailabilitySlot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`

	DayScheduleID *string      `gorm:"type:uuid" json:"day_schedule_id"`
	DaySchedule   *DaySchedule `gorm:"foreignKey:DayScheduleID" json:"day_schedule,omitempty"`

	// Local wall-clock booking time, stored explicitly rather than derived
	// from a UTC timestamp.
	Date      string `gorm:"size:10;index:idx_appointment_doctor_date" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`                              // HH:MM
	EndTime   string `gorm:"size:5" json:"end_time"`                                // HH:MM

	Status             string `gorm:"size:20;default:'scheduled'" json:"status"`
	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`
}
