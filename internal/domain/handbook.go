package domain

import "time"

// Handbook is a password-gated bundle of downloadable files. Password is
// stored as a bcrypt hash and must never reach public read paths; use
// Sanitized for anything a non-admin caller sees.
type Handbook struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:191;not null" json:"title"`
	CoverImageURL string    `gorm:"size:512" json:"coverImageUrl"`
	Password      string    `gorm:"size:100" json:"password,omitempty"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	Order         int       `gorm:"column:sort_order;index" json:"order"`
	IsActive      bool      `json:"isActive"`
	ProjectID     *string   `gorm:"size:36;index" json:"projectId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Files []HandbookFile `gorm:"foreignKey:HandbookID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

func (Handbook) TableName() string { return "handbooks" }

// Sanitized returns a copy safe for public listings: the stored hash is
// stripped, only the fact that a password exists survives.
func (h Handbook) Sanitized() Handbook {
	h.Password = ""
	h.Files = nil
	return h
}

type HandbookFile struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	HandbookID    string    `gorm:"size:36;index;not null" json:"handbookId"`
	Title         string    `gorm:"size:191;not null" json:"title"`
	FileURL       string    `gorm:"size:512;not null" json:"fileUrl"`
	FileType      string    `gorm:"size:32" json:"fileType"`
	FileSize      *int64    `json:"fileSize,omitempty"`
	Order         int       `gorm:"column:sort_order" json:"order"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (HandbookFile) TableName() string { return "handbook_files" }
