package models

import "time"

// Report holds the free-text session notes attached to a completed
// appointment. One report per appointment, upserted by its editor.
type Report struct {
	BaseModel
	AppointmentID string `gorm:"size:36;uniqueIndex;not null" json:"appointmentId"`
	Content       string `gorm:"type:text" json:"content"`
	Editor        string `gorm:"size:150" json:"editor"`

	// Relations
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

// ReportRow is the joined view returned by the report listing endpoints.
type ReportRow struct {
	Content            string    `json:"content"`
	StartTime          time.Time `json:"startTime"`
	PatientID          string    `json:"patientId"`
	PatientFirstName   string    `json:"patientFirstName"`
	PatientLastName    string    `json:"patientLastName"`
	TherapistFirstName string    `json:"therapistFirstName"`
	TherapistLastName  string    `json:"therapistLastName"`
}
