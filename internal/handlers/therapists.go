package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// TherapistHandler handles therapist CRUD.
type TherapistHandler struct {
	DB *gorm.DB
}

// NewTherapistHandler creates a new TherapistHandler.
func NewTherapistHandler(db *gorm.DB) *TherapistHandler {
	return &TherapistHandler{DB: db}
}

// CreateTherapistRequest represents the request body for registering a therapist.
type CreateTherapistRequest struct {
	FirstName string `json:"firstName" binding:"required,alphaspace"`
	LastName  string `json:"lastName" binding:"required,alphaspace"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"required,alphaspace"`
}

// CreateTherapist handles registering a new therapist.
func (h *TherapistHandler) CreateTherapist(c *gin.Context) {
	var req CreateTherapistRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	therapist := models.Therapist{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Specialty: req.Specialty,
	}
	if err := h.DB.Create(&therapist).Error; err != nil {
		utils.InternalServerError(c, "Failed to create therapist", err)
		return
	}

	utils.Created(c, "Therapist created successfully", therapist)
}

// GetTherapists handles fetching all therapists.
func (h *TherapistHandler) GetTherapists(c *gin.Context) {
	var therapists []models.Therapist
	if err := h.DB.Order("last_name asc, first_name asc").Find(&therapists).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch therapists", err)
		return
	}
	utils.Success(c, "Therapists fetched successfully", therapists)
}

// GetTherapistByID handles fetching a single therapist by ID.
func (h *TherapistHandler) GetTherapistByID(c *gin.Context) {
	therapistID := c.Param("id")

	var therapist models.Therapist
	if err := h.DB.First(&therapist, "id = ?", therapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Therapist not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}
	utils.Success(c, "Therapist fetched successfully", therapist)
}

// UpdateTherapistRequest represents the request body for editing a therapist.
// All fields are optional; present fields are validated.
type UpdateTherapistRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,alphaspace"`
	LastName  string `json:"lastName" binding:"omitempty,alphaspace"`
	Email     string `json:"email" binding:"omitempty,email"`
	Specialty string `json:"specialty" binding:"omitempty,alphaspace"`
}

// UpdateTherapist handles editing a therapist by ID.
func (h *TherapistHandler) UpdateTherapist(c *gin.Context) {
	therapistID := c.Param("id")

	var req UpdateTherapistRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var therapist models.Therapist
	if err := h.DB.First(&therapist, "id = ?", therapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Therapist not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	if req.FirstName != "" {
		therapist.FirstName = req.FirstName
	}
	if req.LastName != "" {
		therapist.LastName = req.LastName
	}
	if req.Email != "" {
		therapist.Email = req.Email
	}
	if req.Specialty != "" {
		therapist.Specialty = req.Specialty
	}

	if err := h.DB.Save(&therapist).Error; err != nil {
		utils.InternalServerError(c, "Failed to update therapist", err)
		return
	}

	utils.Success(c, "Therapist updated successfully", therapist)
}

// DeleteTherapist handles deleting a therapist by ID.
func (h *TherapistHandler) DeleteTherapist(c *gin.Context) {
	therapistID := c.Param("id")

	var therapist models.Therapist
	if err := h.DB.First(&therapist, "id = ?", therapistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Therapist not found")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	if err := h.DB.Delete(&therapist).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete therapist", err)
		return
	}

	utils.Success(c, "Therapist deleted successfully", gin.H{"success": true})
}
