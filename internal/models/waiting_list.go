package models

// WaitingListEntry links a patient to their assigned therapist while the
// patient still needs appointments. An entry is created automatically when
// the patient is registered and removed only by the explicit waiting-list
// deletion endpoint; deleting an appointment never touches it.
type WaitingListEntry struct {
	BaseModel
	PatientID   string `gorm:"size:36;index;not null" json:"patientId"`
	TherapistID string `gorm:"size:36;index;not null" json:"therapistId"`

	// Relations
	Patient   Patient   `gorm:"foreignKey:PatientID" json:"-"`
	Therapist Therapist `gorm:"foreignKey:TherapistID" json:"-"`
}

// WaitingListRow is the joined view returned by the waiting-list endpoints.
type WaitingListRow struct {
	ID                 string        `json:"id"`
	PatientID          string        `json:"patientId"`
	TherapistID        string        `json:"therapistId"`
	PatientFirstName   string        `json:"patientFirstName"`
	PatientLastName    string        `json:"patientLastName"`
	PatientStatus      PatientStatus `json:"patientStatus"`
	TherapistFirstName string        `json:"therapistFirstName"`
	TherapistLastName  string        `json:"therapistLastName"`
}
