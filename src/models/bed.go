package models

import "hms/src/types"

// Bed invariant: IsOccupied is true exactly when CurrentPatientID is set.
// Handlers validate it on direct writes; common.TransferPatient maintains
// it transactionally.
type Bed struct {
	ID               uint   `gorm:"primarykey" json:"id"`
	WardID           uint   `gorm:"uniqueIndex:idx_ward_bed_number" json:"ward_id,omitempty"`
	BedNumber        string `gorm:"uniqueIndex:idx_ward_bed_number" json:"bed_number,omitempty"`
	IsICU            bool   `json:"is_icu"`
	IsOccupied       bool   `json:"is_occupied"`
	CurrentPatientID *uint  `json:"current_patient_id,omitempty"`

	Ward           *Ward    `gorm:"foreignKey:WardID" json:"ward,omitempty"`
	CurrentPatient *Patient `gorm:"foreignKey:CurrentPatientID" json:"current_patient,omitempty"`

	types.Timestamps
}
