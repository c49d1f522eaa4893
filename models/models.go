package models

import (
	"time"
)

// User represents a registered account. Usernames are display names and may
// repeat; the email is the unique login identifier.
type User struct {
	ID           uint `gorm:"primarykey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Username     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

// File is the registry record for one uploaded file. Filename is unique only
// within the owner's storage directory (the allocator guarantees that);
// StoragePath is globally unique.
type File struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Filename    string `gorm:"not null"`
	StoragePath string `gorm:"uniqueIndex;not null"`
	Size        int64
	UserID      uint `gorm:"not null;index"`
	User        User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Action identifies what kind of event a log entry records.
type Action string

const (
	ActionUserAccountAdded   Action = "user_account_added"
	ActionUserLoggedIn       Action = "user_logged_in"
	ActionUserLoggedOut      Action = "user_logged_out"
	ActionUserUpdatedProfile Action = "user_updated_profile"
	ActionFileUploaded       Action = "file_uploaded"
	ActionFileDeleted        Action = "file_deleted"
	ActionFileDownloaded     Action = "file_downloaded"
)

// LogEntry is one append-only audit record. FileID carries no foreign-key
// constraint: entries outlive the files they reference and the id is allowed
// to dangle after a delete. FileVersion and FileSize are set on uploads only.
type LogEntry struct {
	ID          uint   `gorm:"primarykey"`
	Action      Action `gorm:"not null;index"`
	CreatedAt   time.Time
	UserID      uint `gorm:"not null;index"`
	User        User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FileID      *uint
	FileVersion *int
	FileSize    *int64
}
