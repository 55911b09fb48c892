package models

import "hms/src/types"

type DoctorSchedule struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	DoctorID    uint   `json:"doctor_id,omitempty"`
	Day         string `json:"day,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	IsAvailable bool   `gorm:"default:true" json:"is_available"`

	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`

	types.Timestamps
}
