package models

import (
	"errors"

	"gorm.io/gorm"
)

// PatientStatus represents where a patient stands in their treatment
type PatientStatus string

const (
	PatientActive       PatientStatus = "active"
	PatientIntermittent PatientStatus = "intermittent"
	PatientPaused       PatientStatus = "paused"
	PatientWithdrawn    PatientStatus = "withdrawn"
	PatientCompleted    PatientStatus = "completed"
)

// ErrPatientLocked is returned when any update is attempted against a
// patient whose stored status is completed. Discharged records are immutable.
var ErrPatientLocked = errors.New("patient record is locked: treatment already completed")

// SettablePatientStatuses are the values accepted by the status endpoint.
// "completed" is deliberately absent: completion is terminal and cannot be
// entered or reverted through the status mutation path.
var SettablePatientStatuses = []PatientStatus{
	PatientActive,
	PatientIntermittent,
	PatientPaused,
	PatientWithdrawn,
}

// IsSettablePatientStatus reports whether s may be assigned via the status
// mutation endpoint.
func IsSettablePatientStatus(s PatientStatus) bool {
	for _, allowed := range SettablePatientStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Patient represents a person receiving treatment at the clinic
type Patient struct {
	BaseModel
	FirstName   string        `gorm:"size:100;not null" json:"firstName"`
	LastName    string        `gorm:"size:100;not null" json:"lastName"`
	NationalID  string        `gorm:"uniqueIndex;size:30;not null" json:"nationalId"`
	Age         int           `json:"age"`
	Email       string        `gorm:"size:255" json:"email"`
	CareType    string        `gorm:"size:100" json:"careType"`
	Address     string        `gorm:"size:255" json:"address"`
	Insurer     string        `gorm:"size:150" json:"insurer"`
	TherapistID string        `gorm:"size:36;index;not null" json:"therapistId"`
	Status      PatientStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations
	Therapist    Therapist     `gorm:"foreignKey:TherapistID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeUpdate rejects writes against discharged patients. Enforcing the
// lock here keeps every update path honest, not just the status endpoint.
func (p *Patient) BeforeUpdate(tx *gorm.DB) error {
	if p.ID == "" {
		return nil
	}
	var current Patient
	err := tx.Session(&gorm.Session{NewDB: true}).
		Select("status").
		First(&current, "id = ?", p.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if current.Status == PatientCompleted {
		return ErrPatientLocked
	}
	return nil
}
