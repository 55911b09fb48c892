package models

import (
	"hms/src/types"
	"time"
)

type Patient struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	FirstName        string    `json:"first_name,omitempty"`
	LastName         string    `json:"last_name,omitempty"`
	Dob              time.Time `json:"dob,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Address          string    `json:"address,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	MedicalHistory   string    `json:"medical_history,omitempty"`
	DischargeSummary string    `json:"discharge_summary,omitempty"`
	CreatedByID      *uint     `json:"created_by,omitempty"`

	CreatedBy *User `gorm:"foreignKey:CreatedByID" json:"-"`

	types.Timestamps
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
