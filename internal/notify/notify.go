package notify

// Event is the structured rescheduling outcome handed to the notification
// sink. The core constructs and emits it; delivery (email/SMS) is the
// sink's concern and may fail without affecting scheduling.
type Event struct {
	AppointmentID string `json:"appointment_id"`
	PatientID     string `json:"patient_id"`
	PatientName   string `json:"patient_name"`
	PatientEmail  string `json:"patient_email"`
	PatientPhone  string `json:"patient_phone"`
	DoctorName    string `json:"doctor_name"`

	OldDate string `json:"old_date,omitempty"`
	OldTime string `json:"old_time,omitempty"`
	NewDate string `json:"new_date,omitempty"`
	NewTime string `json:"new_time,omitempty"`

	Type string `json:"type"` // rescheduled | pending

	Alternatives []AlternativeSlot `json:"alternatives,omitempty"`
}

const (
	TypeRescheduled = "rescheduled"
	TypePending     = "pending"
)

// AlternativeSlot is one suggested (date, bucket) option included in a
// manual-action notification.
type AlternativeSlot struct {
	Date       string `json:"date"`
	TimeBucket string `json:"time_bucket"`
}

// Sink accepts rescheduling events for delivery.
type Sink interface {
	Send(ev Event) error
}
