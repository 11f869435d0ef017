package models

import (
	"time"
)

// Organization is a registered operator of the program. It owns groups.
type Organization struct {
	ID                uint       `gorm:"primaryKey" json:"-"`
	OrgID             string     `gorm:"uniqueIndex;size:64;not null" json:"orgId"`
	OrgName           string     `gorm:"not null" json:"orgName"`
	BusinessNumber    string     `gorm:"uniqueIndex;size:32;not null" json:"businessNumber"`
	PasswordHash      string     `gorm:"not null" json:"-"` // bcrypt, or the legacy cipher text
	CreatedAt         time.Time  `json:"-"`
	FailedAttempts    int        `gorm:"default:0" json:"-"`
	LastFailedAttempt *time.Time `json:"-"`
	LockedUntil       *time.Time `json:"-"`
}

func (Organization) TableName() string { return "nm_organizations" }

// User is the session identity returned by login and token verification.
type User struct {
	OrgID          string `json:"orgId"`
	OrgName        string `json:"orgName"`
	BusinessNumber string `json:"businessNumber"`
}

func (o Organization) User() User {
	return User{OrgID: o.OrgID, OrgName: o.OrgName, BusinessNumber: o.BusinessNumber}
}
