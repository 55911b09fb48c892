package models

import (
	"hms/src/types"
	"time"
)

type BedTransfer struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	PatientID     uint      `json:"patient_id,omitempty"`
	FromBedID     *uint     `json:"from_bed_id,omitempty"`
	ToBedID       uint      `json:"to_bed_id,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	TransferredAt time.Time `json:"transferred_at,omitempty"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	FromBed *Bed     `gorm:"foreignKey:FromBedID" json:"from_bed,omitempty"`
	ToBed   *Bed     `gorm:"foreignKey:ToBedID" json:"to_bed,omitempty"`

	types.Timestamps
}
