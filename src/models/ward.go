package models

import "hms/src/types"

type Ward struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `json:"name,omitempty"`
	WardType  string `json:"ward_type,omitempty"`
	TotalBeds uint   `json:"total_beds"`

	// AvailableBeds is computed per response, never stored.
	AvailableBeds int64 `gorm:"-" json:"available_beds"`

	Beds []Bed `gorm:"foreignKey:WardID" json:"beds,omitempty"`

	types.Timestamps
}
