package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"
)

// WaitingListHandler handles the queue of patients awaiting scheduling.
type WaitingListHandler struct {
	DB *gorm.DB
}

// NewWaitingListHandler creates a new WaitingListHandler.
func NewWaitingListHandler(db *gorm.DB) *WaitingListHandler {
	return &WaitingListHandler{DB: db}
}

const waitingListColumns = `waiting_list_entries.id AS id,
	waiting_list_entries.patient_id AS patient_id,
	waiting_list_entries.therapist_id AS therapist_id,
	patients.first_name AS patient_first_name,
	patients.last_name AS patient_last_name,
	patients.status AS patient_status,
	therapists.first_name AS therapist_first_name,
	therapists.last_name AS therapist_last_name`

func (h *WaitingListHandler) joined() *gorm.DB {
	return h.DB.Model(&models.WaitingListEntry{}).
		Select(waitingListColumns).
		Joins("JOIN patients ON patients.id = waiting_list_entries.patient_id").
		Joins("JOIN therapists ON therapists.id = waiting_list_entries.therapist_id")
}

// GetWaitingList returns every waiting-list entry joined with patient and
// therapist names, oldest first.
func (h *WaitingListHandler) GetWaitingList(c *gin.Context) {
	var rows []models.WaitingListRow
	if err := h.joined().Order("waiting_list_entries.created_at asc").Scan(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch waiting list", err)
		return
	}
	utils.Success(c, "Waiting list fetched successfully", rows)
}

// GetWaitingListEntry returns one joined waiting-list row by entry ID.
func (h *WaitingListHandler) GetWaitingListEntry(c *gin.Context) {
	entryID := c.Param("id")

	var rows []models.WaitingListRow
	if err := h.joined().Where("waiting_list_entries.id = ?", entryID).Scan(&rows).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch waiting list entry", err)
		return
	}
	if len(rows) == 0 {
		utils.NotFound(c, "Patient not found on waiting list")
		return
	}
	utils.Success(c, "Waiting list entry fetched successfully", rows[0])
}

// DeleteWaitingListEntry removes a patient from the waiting list. This is
// the only path that removes an entry; appointment deletion never does.
func (h *WaitingListHandler) DeleteWaitingListEntry(c *gin.Context) {
	entryID := c.Param("id")

	var entry models.WaitingListEntry
	if err := h.DB.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found on waiting list")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	if err := h.DB.Delete(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to remove patient from waiting list", err)
		return
	}

	utils.Success(c, "Patient removed from waiting list", gin.H{"success": true})
}

// GetEntryAppointments returns the appointment history for the (patient,
// therapist) pair behind a waiting-list entry, newest first.
func (h *WaitingListHandler) GetEntryAppointments(c *gin.Context) {
	entryID := c.Param("id")

	var entry models.WaitingListEntry
	if err := h.DB.First(&entry, "id = ?", entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Patient not found on waiting list")
		} else {
			utils.InternalServerError(c, "Database error", err)
		}
		return
	}

	var appointments []models.Appointment
	err := h.DB.Where("patient_id = ? AND therapist_id = ?", entry.PatientID, entry.TherapistID).
		Order("start_time desc").
		Find(&appointments).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments", err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}
