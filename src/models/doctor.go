package models

import "hms/src/types"

type Doctor struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	UserID         uint   `gorm:"uniqueIndex" json:"user_id,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Qualification  string `json:"qualification,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Bio            string `json:"bio,omitempty"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`

	User      *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"schedules,omitempty"`
	Leaves    []DoctorLeave    `gorm:"foreignKey:DoctorID" json:"leaves,omitempty"`

	types.Timestamps
}
