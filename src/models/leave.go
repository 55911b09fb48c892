package models

import (
	"hms/src/types"
	"time"
)

type DoctorLeave struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	DoctorID  uint              `json:"doctor_id,omitempty"`
	StartDate time.Time         `json:"start_date,omitempty"`
	EndDate   time.Time         `json:"end_date,omitempty"`
	Reason    string            `json:"reason,omitempty"`
	Status    types.LeaveStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	types.Timestamps
}
