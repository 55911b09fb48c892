package models

import "hms/src/types"

type User struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Username    string     `gorm:"uniqueIndex" json:"username,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Password    string     `json:"-"`
	Role        types.Role `gorm:"default:'receptionist'" json:"role,omitempty"`
	IsSuperuser bool       `json:"is_superuser,omitempty"`

	types.Timestamps
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
