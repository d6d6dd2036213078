package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// ReportHandler handles session reports attached to appointments.
type ReportHandler struct {
	DB *gorm.DB
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db}
}

// SaveReportRequest represents the upsert body for a session report.
type SaveReportRequest struct {
	AppointmentID   string `json:"appointmentId" binding:"required"`
	Content         string `json:"content" binding:"required"`
	Editor          string `json:"editor"`
	DurationMinutes int    `json:"durationMinutes"`
}

// SaveReport creates or updates the report for an appointment. An optional
// corrected duration is applied only while the appointment is still
// pending; completed appointments stay immutable apart from the report.
func (h *ReportHandler) SaveReport(c *gin.Context) {
	var req SaveReportRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var created bool
	var report models.Report

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", req.AppointmentID).Error; err != nil {
			return err
		}

		if req.DurationMinutes > 0 && appointment.Status == models.AppointmentPending {
			if err := tx.Model(&appointment).
				Update("duration_minutes", req.DurationMinutes).Error; err != nil {
				return err
			}
		}

		err := tx.Where("appointment_id = ?", req.AppointmentID).First(&report).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			report = models.Report{
				AppointmentID: req.AppointmentID,
				Content:       req.Content,
				Editor:        req.Editor,
			}
			return tx.Create(&report).Error
		}
		if err != nil {
			return err
		}

		report.Content = req.Content
		report.Editor = req.Editor
		return tx.Save(&report).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to save report", err)
		}
		return
	}

	if created {
		utils.Created(c, "Report created successfully", report)
		return
	}
	utils.Success(c, "Report updated successfully", report)
}

// ReportDetail is the single-report view including the patient's status.
type ReportDetail struct {
	ID              string               `json:"id"`
	AppointmentID   string               `json:"appointmentId"`
	Content         string               `json:"content"`
	Editor          string               `json:"editor"`
	CreatedAt       time.Time            `json:"createdAt"`
	DurationMinutes int                  `json:"durationMinutes"`
	PatientStatus   models.PatientStatus `json:"patientStatus"`
}

// GetReportByAppointment returns the report attached to an appointment.
func (h *ReportHandler) GetReportByAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var rows []ReportDetail
	err := h.DB.Model(&models.Report{}).
		Select(`reports.id AS id,
			reports.appointment_id AS appointment_id,
			reports.content AS content,
			reports.editor AS editor,
			reports.created_at AS created_at,
			appointments.duration_minutes AS duration_minutes,
			patients.status AS patient_status`).
		Joins("JOIN appointments ON appointments.id = reports.appointment_id").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("reports.appointment_id = ?", appointmentID).
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch report", err)
		return
	}
	if len(rows) == 0 {
		utils.NotFound(c, "Report not found")
		return
	}
	utils.Success(c, "Report fetched successfully", rows[0])
}

const reportRowColumns = `reports.content AS content,
	appointments.start_time AS start_time,
	patients.id AS patient_id,
	patients.first_name AS patient_first_name,
	patients.last_name AS patient_last_name,
	therapists.first_name AS therapist_first_name,
	therapists.last_name AS therapist_last_name`

func (h *ReportHandler) joined() *gorm.DB {
	return h.DB.Model(&models.Report{}).
		Select(reportRowColumns).
		Joins("JOIN appointments ON appointments.id = reports.appointment_id").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Joins("JOIN therapists ON therapists.id = appointments.therapist_id")
}

// GetReportsByPatient returns every report for one patient in session order.
func (h *ReportHandler) GetReportsByPatient(c *gin.Context) {
	patientID := c.Param("id")

	var rows []models.ReportRow
	err := h.joined().
		Where("patients.id = ?", patientID).
		Order("appointments.start_time asc").
		Scan(&rows).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch patient reports", err)
		return
	}
	utils.Success(c, "Reports fetched successfully", rows)
}

// GetReports returns every report in the system in session order.
func (h *ReportHandler) GetReports(c *gin.Context) {
	var rows []models.ReportRow
	if err := h.joined().Order("appointments.start_time asc").Scan(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch reports", err)
		return
	}
	utils.Success(c, "Reports fetched successfully", rows)
}
