package notify

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/schedula/clinic-scheduler/internal/models"
)

// OutboxSink persists each event as a notification row and logs it.
// Actual email/SMS delivery hangs off the outbox downstream.
type OutboxSink struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewOutboxSink(db *gorm.DB, logger *zap.Logger) *OutboxSink {
	return &OutboxSink{db: db, logger: logger}
}

func (s *OutboxSink) Send(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	n := models.Notification{
		AppointmentID: ev.AppointmentID,
		PatientID:     ev.PatientID,
		Type:          ev.Type,
		Payload:       string(payload),
	}

	if err := s.db.Create(&n).Error; err != nil {
		return err
	}

	s.logger.Info("patient notification queued",
		zap.String("appointment_id", ev.AppointmentID),
		zap.String("patient", ev.PatientName),
		zap.String("type", ev.Type),
		zap.String("new_date", ev.NewDate),
		zap.String("new_time", ev.NewTime),
	)
	return nil
}
