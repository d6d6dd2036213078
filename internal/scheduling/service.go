package scheduling

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/models"
)

// Rejection reasons surfaced by the admission check and the lifecycle
// transitions. Handlers map these onto HTTP statuses.
var (
	ErrTherapistNotFound   = errors.New("therapist not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrOverlap             = errors.New("must have at least 1 hour separation between appointments")
	ErrQuotaExceeded       = errors.New("weekly limit of 2 appointments reached")
	ErrNotPending          = errors.New("appointment not found or already completed")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrCompletedImmutable  = errors.New("completed appointments cannot be deleted")
)

// Service runs the appointment admission check and the pending/completed
// lifecycle transitions. Every operation is a single request-scoped
// transaction; admission locks the therapist row so concurrent proposals
// for the same therapist are serialized.
type Service struct {
	db              *gorm.DB
	buffer          time.Duration
	weeklyQuota     int
	defaultDuration time.Duration
}

// NewService creates a scheduling service with the configured buffer and
// weekly quota.
func NewService(db *gorm.DB, cfg config.SchedulingConfig) *Service {
	return &Service{
		db:              db,
		buffer:          time.Duration(cfg.BufferMinutes) * time.Minute,
		weeklyQuota:     cfg.WeeklyQuota,
		defaultDuration: time.Duration(cfg.DefaultDurationMinutes) * time.Minute,
	}
}

// ProposeRequest carries a candidate appointment into the admission check.
type ProposeRequest struct {
	PatientID       string
	TherapistID     string
	StartTime       time.Time
	DurationMinutes int
}

// Propose runs the admission check and, if the slot is admissible, persists
// the appointment with status pending.
//
// The overlap test compares the candidate's buffered window against the
// stored windows of the therapist's existing appointments; the quota test
// counts the therapist's appointments starting inside the calendar week of
// the proposed start. Both checks and the insert share one transaction that
// first takes a row lock on the therapist, so two concurrent proposals for
// the same therapist cannot both pass the checks.
func (s *Service) Propose(req ProposeRequest) (*models.Appointment, error) {
	duration := time.Duration(req.DurationMinutes) * time.Minute
	if req.DurationMinutes <= 0 {
		duration = s.defaultDuration
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		TherapistID:     req.TherapistID,
		StartTime:       req.StartTime,
		DurationMinutes: int(duration / time.Minute),
		Status:          models.AppointmentPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var therapist models.Therapist
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&therapist, "id = ?", req.TherapistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTherapistNotFound
			}
			return err
		}

		var patient models.Patient
		if err := tx.First(&patient, "id = ?", req.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return err
		}

		buffered := NewWindow(req.StartTime, duration).Buffered(s.buffer)

		var overlapping int64
		if err := tx.Model(&models.Appointment{}).
			Where("therapist_id = ? AND start_time < ? AND start_time + (duration_minutes * interval '1 minute') > ?",
				req.TherapistID, buffered.End, buffered.Start).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return ErrOverlap
		}

		weekStart, weekEnd := WeekBounds(req.StartTime)
		var booked int64
		if err := tx.Model(&models.Appointment{}).
			Where("therapist_id = ? AND start_time >= ? AND start_time < ?",
				req.TherapistID, weekStart, weekEnd).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked >= int64(s.weeklyQuota) {
			return ErrQuotaExceeded
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Complete transitions a pending appointment to completed. The read-check
// and the write share a transaction with the row locked, so completing an
// already-completed or missing appointment fails with ErrNotPending and
// leaves the row untouched. The patient's waiting-list entry is deliberately
// left alone: a completed session does not discharge the patient.
func (s *Service) Complete(appointmentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ? AND status = ?", appointmentID, models.AppointmentPending).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotPending
			}
			return err
		}
		return tx.Model(&appointment).Update("status", models.AppointmentCompleted).Error
	})
}

// Delete removes a pending appointment. Completed appointments are
// immutable and are rejected. The waiting-list entry for the (patient,
// therapist) pair is never removed here; discharging a patient from the
// waiting list is always an explicit, separate action.
func (s *Service) Delete(appointmentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", appointmentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}
		if appointment.Status == models.AppointmentCompleted {
			return ErrCompletedImmutable
		}
		return tx.Delete(&appointment).Error
	})
}
