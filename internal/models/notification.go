package models

// Notification is the persisted outbox row for a rescheduling event. The
// dispatcher writes one per emitted event; actual delivery is a downstream
// concern.
type Notification struct {
	Base

	AppointmentID string `gorm:"type:uuid;index" json:"appointment_id"`
	PatientID     string `gorm:"type:uuid;index" json:"patient_id"`

	Type    string `gorm:"size:20;not null" json:"type"` // rescheduled | pending
	Payload string `gorm:"type:text" json:"payload"`
}
