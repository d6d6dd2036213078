package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment represents a scheduled session between a patient and a
// therapist. Rows are only ever created through the admission check.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	TherapistID     string            `gorm:"size:36;index" json:"therapistId"`
	StartTime       time.Time         `gorm:"index" json:"startTime"`
	DurationMinutes int               `gorm:"not null" json:"durationMinutes"`
	Status          AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`

	// Relations
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Therapist Therapist `gorm:"foreignKey:TherapistID" json:"-"`
}

// EndTime returns the exclusive end of the appointment's time window.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// AppointmentDetail is the joined view returned when a single appointment
// is fetched together with its patient and therapist.
type AppointmentDetail struct {
	ID                 string            `json:"id"`
	PatientID          string            `json:"patientId"`
	TherapistID        string            `json:"therapistId"`
	StartTime          time.Time         `json:"startTime"`
	DurationMinutes    int               `json:"durationMinutes"`
	Status             AppointmentStatus `json:"status"`
	PatientFirstName   string            `json:"patientFirstName"`
	PatientLastName    string            `json:"patientLastName"`
	PatientAge         int               `json:"patientAge"`
	PatientNationalID  string            `json:"patientNationalId"`
	PatientAddress     string            `json:"patientAddress"`
	PatientInsurer     string            `json:"patientInsurer"`
	PatientCareType    string            `json:"patientCareType"`
	PatientStatus      PatientStatus     `json:"patientStatus"`
	TherapistFirstName string            `json:"therapistFirstName"`
	TherapistLastName  string            `json:"therapistLastName"`
}
