package domain

import "time"

type User struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Name               string     `gorm:"size:64" json:"name"`
	Email              string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password           string     `gorm:"size:100" json:"password,omitempty"` // bcrypt hash
	Role               string     `gorm:"size:16" json:"role"`                // "admin" / "editor"
	ResetToken         *string    `gorm:"size:64;index" json:"resetToken,omitempty"`
	ResetTokenExpiry   *time.Time `json:"resetTokenExpiry,omitempty"`
	HasChangedPassword bool       `json:"hasChangedPassword"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Sanitized strips credential material for non-privileged callers.
func (u User) Sanitized() User {
	u.Password = ""
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return u
}
