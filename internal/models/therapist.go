package models

// Therapist represents a member of the clinical staff that patients are
// assigned to. The weekly appointment quota is derived at admission time,
// not stored here.
type Therapist struct {
	BaseModel
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Specialty string `gorm:"size:150" json:"specialty"`

	// Relations (not always preloaded)
	Patients     []Patient     `gorm:"foreignKey:TherapistID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:TherapistID" json:"-"`
}
