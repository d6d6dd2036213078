package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// PatientHandler handles patient intake and record management.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// CreatePatientRequest represents the request body for patient intake.
type CreatePatientRequest struct {
	FirstName   string `json:"firstName" binding:"required,alphaspace"`
	LastName    string `json:"lastName" binding:"required,alphaspace"`
	NationalID  string `json:"nationalId" binding:"required,numeric"`
	Age         *int   `json:"age" binding:"required,gte=0,lte=120"`
	Email       string `json:"email" binding:"required,email"`
	CareType    string `json:"careType" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Insurer     string `json:"insurer" binding:"required"`
	TherapistID string `json:"therapistId" binding:"required"`
}

// CreatePatient registers a patient and enqueues them on the waiting list
// for their assigned therapist. Both inserts share one transaction.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existing models.Patient
	if err := h.DB.Where("national_id = ?", req.NationalID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Patient with this national ID already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InternalServerError(c, "Database error", err)
		return
	}

	patient := models.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		NationalID:  req.NationalID,
		Age:         *req.Age,
		Email:       req.Email,
		CareType:    req.CareType,
		Address:     req.Address,
		Insurer:     req.Insurer,
		TherapistID: req.TherapistID,
		Status:      models.PatientActive,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var therapist models.Therapist
		if err := tx.First(&therapist, "id = ?", req.TherapistID).Error; err != nil {
			return err
		}
		if err := tx.Create(&patient).Error; err != nil {
			return err
		}
		entry := models.WaitingListEntry{
			PatientID:   patient.ID,
			TherapistID: req.TherapistID,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.BadRequest(c, "Invalid therapist")
		} else {
			utils.InternalServerError(c, "Failed to create patient", err)
		}
		return
	}

	utils.Created(c, "Patient created successfully", patient)
}

// GetPatients handles fetching all patients, newest first.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients", err)
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// GetPatientByID handles fetching a single patient by ID.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}
	utils.Success(c, "Patient fetched successfully", patient)
}

// UpdatePatientRequest represents the request body for editing a patient
// record. All fields are optional; present fields are validated.
type UpdatePatientRequest struct {
	FirstName  string `json:"firstName" binding:"omitempty,alphaspace"`
	LastName   string `json:"lastName" binding:"omitempty,alphaspace"`
	NationalID string `json:"nationalId" binding:"omitempty,numeric"`
	Age        *int   `json:"age" binding:"omitempty,gte=0,lte=120"`
	Email      string `json:"email" binding:"omitempty,email"`
	CareType   string `json:"careType"`
	Address    string `json:"address"`
	Insurer    string `json:"insurer"`
}

// UpdatePatient handles editing a patient record. A discharged (completed)
// patient is immutable through every path; the check here is backed up by
// the model-level guard.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var req UpdatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	if patient.Status == models.PatientCompleted {
		utils.Conflict(c, "Patient record is locked: treatment already completed")
		return
	}

	if req.FirstName != "" {
		patient.FirstName = req.FirstName
	}
	if req.LastName != "" {
		patient.LastName = req.LastName
	}
	if req.NationalID != "" {
		patient.NationalID = req.NationalID
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.CareType != "" {
		patient.CareType = req.CareType
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Insurer != "" {
		patient.Insurer = req.Insurer
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		if errors.Is(err, models.ErrPatientLocked) {
			utils.Conflict(c, "Patient record is locked: treatment already completed")
		} else {
			utils.InternalServerError(c, "Failed to update patient", err)
		}
		return
	}

	utils.Success(c, "Patient updated successfully", patient)
}

// UpdatePatientStatusRequest represents the request body for the status
// mutation endpoint.
type UpdatePatientStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePatientStatus mutates a patient's scheduling status. "completed"
// cannot be set through this path, and once a patient's stored status is
// completed no further mutation is accepted.
func (h *PatientHandler) UpdatePatientStatus(c *gin.Context) {
	patientID := c.Param("id")

	var req UpdatePatientStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	status := models.PatientStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !models.IsSettablePatientStatus(status) {
		utils.BadRequest(c, "Invalid status")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	if patient.Status == models.PatientCompleted {
		utils.BadRequest(c, "Cannot modify patient status: treatment already completed")
		return
	}

	if err := h.DB.Model(&patient).Update("status", status).Error; err != nil {
		if errors.Is(err, models.ErrPatientLocked) {
			utils.BadRequest(c, "Cannot modify patient status: treatment already completed")
		} else {
			utils.InternalServerError(c, "Failed to update status", err)
		}
		return
	}

	patient.Status = status
	utils.Success(c, "Status updated successfully", patient)
}
