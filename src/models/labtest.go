package models

import (
	"hms/src/types"
	"time"
)

type LabTest struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	PatientID     uint            `json:"patient_id,omitempty"`
	DoctorID      *uint           `json:"doctor_id,omitempty"`
	TestName      string          `json:"test_name,omitempty"`
	BookedAt      time.Time       `json:"booked_at,omitempty"`
	ResultSummary string          `json:"result_summary,omitempty"`
	ReportFile    string          `json:"report_file,omitempty"`
	Status        types.LabStatus `gorm:"default:'booked'" json:"status,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	types.Timestamps
}
