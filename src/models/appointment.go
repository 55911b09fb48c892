package models

import (
	"hms/src/types"
	"time"
)

// Appointment links a patient to a doctor-role user. TokenNumber is the
// 1-based queue position for that doctor on that calendar day.
// AppointmentDay is AppointmentDate truncated to midnight and lives in the
// unique index so same-day duplicates trip 23505 regardless of the time of
// day; the retry loop in common.CreateAppointment relies on that.
type Appointment struct {
	ID              uint                    `gorm:"primarykey" json:"id"`
	PatientID       uint                    `gorm:"index" json:"patient_id,omitempty"`
	DoctorID        uint                    `gorm:"uniqueIndex:idx_doctor_day_token,priority:1" json:"doctor_id,omitempty"`
	AppointmentDate time.Time               `gorm:"index" json:"appointment_date,omitempty"`
	AppointmentDay  time.Time               `gorm:"uniqueIndex:idx_doctor_day_token,priority:2" json:"-"`
	Reason          string                  `json:"reason,omitempty"`
	Status          types.AppointmentStatus `gorm:"default:'pending'" json:"status,omitempty"`
	TokenNumber     uint                    `gorm:"uniqueIndex:idx_doctor_day_token,priority:3" json:"token_number,omitempty"`
	CreatedByID     *uint                   `json:"created_by,omitempty"`

	Patient   *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor    *User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID" json:"-"`

	types.Timestamps
}
