package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/scheduling"
	"clinic-app-server/internal/utils"
)

// Scheduler is the admission-check and lifecycle contract the appointment
// handler depends on.
type Scheduler interface {
	Propose(req scheduling.ProposeRequest) (*models.Appointment, error)
	Complete(appointmentID string) error
	Delete(appointmentID string) error
}

// AppointmentHandler handles appointment booking and lifecycle requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler Scheduler
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, scheduler Scheduler) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduler}
}

// CreateAppointmentRequest represents the request body for booking an
// appointment. Duration defaults to the configured value when omitted.
type CreateAppointmentRequest struct {
	PatientID       string    `json:"patientId" binding:"required"`
	TherapistID     string    `json:"therapistId" binding:"required"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes"`
}

// CreateAppointment runs the admission check and books the slot.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := h.Scheduler.Propose(scheduling.ProposeRequest{
		PatientID:       req.PatientID,
		TherapistID:     req.TherapistID,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrOverlap):
			utils.Conflict(c, err.Error())
		case errors.Is(err, scheduling.ErrQuotaExceeded):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, scheduling.ErrTherapistNotFound),
			errors.Is(err, scheduling.ErrPatientNotFound):
			utils.BadRequest(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to create appointment", err)
		}
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

const appointmentDetailColumns = `appointments.id AS id,
	appointments.patient_id AS patient_id,
	appointments.therapist_id AS therapist_id,
	appointments.start_time AS start_time,
	appointments.duration_minutes AS duration_minutes,
	appointments.status AS status,
	patients.first_name AS patient_first_name,
	patients.last_name AS patient_last_name,
	patients.age AS patient_age,
	patients.national_id AS patient_national_id,
	patients.address AS patient_address,
	patients.insurer AS patient_insurer,
	patients.care_type AS patient_care_type,
	patients.status AS patient_status,
	therapists.first_name AS therapist_first_name,
	therapists.last_name AS therapist_last_name`

func (h *AppointmentHandler) detailed() *gorm.DB {
	return h.DB.Model(&models.Appointment{}).
		Select(appointmentDetailColumns).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN therapists ON therapists.id = appointments.therapist_id")
}

// GetAppointmentByID returns one appointment joined with its patient and
// therapist.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var rows []models.AppointmentDetail
	if err := h.detailed().Where("appointments.id = ?", appointmentID).Scan(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointment", err)
		return
	}
	if len(rows) == 0 {
		utils.NotFound(c, "Appointment not found")
		return
	}
	utils.Success(c, "Appointment fetched successfully", rows[0])
}

// GetCompletedAppointments returns every completed appointment joined with
// names, newest first.
func (h *AppointmentHandler) GetCompletedAppointments(c *gin.Context) {
	var rows []models.AppointmentDetail
	err := h.detailed().
		Where("appointments.status = ?", models.AppointmentCompleted).
		Order("appointments.start_time desc").
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch completed appointments", err)
		return
	}
	utils.Success(c, "Completed appointments fetched successfully", rows)
}

// CompleteAppointment transitions a pending appointment to completed.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	if err := h.Scheduler.Complete(appointmentID); err != nil {
		if errors.Is(err, scheduling.ErrNotPending) {
			utils.NotFound(c, err.Error())
		} else {
			utils.InternalServerError(c, "Failed to complete appointment", err)
		}
		return
	}

	utils.Success(c, "Appointment completed successfully", gin.H{"success": true})
}

// DeleteAppointment removes a pending appointment. The patient's
// waiting-list entry is never touched here.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	if err := h.Scheduler.Delete(appointmentID); err != nil {
		switch {
		case errors.Is(err, scheduling.ErrAppointmentNotFound):
			utils.NotFound(c, err.Error())
		case errors.Is(err, scheduling.ErrCompletedImmutable):
			utils.Conflict(c, err.Error())
		default:
			utils.InternalServerError(c, "Failed to delete appointment", err)
		}
		return
	}

	utils.Success(c, "Appointment deleted successfully", gin.H{"success": true})
}
