package domain

import "time"

type Document struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:191;not null" json:"title"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	FileURL       string    `gorm:"size:512;not null" json:"fileUrl"`
	ImageURL      *string   `gorm:"size:512" json:"imageUrl,omitempty"`
	FileType      string    `gorm:"size:32" json:"fileType"`
	Category      string    `gorm:"size:64;index" json:"category"`
	Order         int       `gorm:"column:sort_order;index" json:"order"`
	IsActive      bool      `json:"isActive"`
	ProjectID     *string   `gorm:"size:36;index" json:"projectId,omitempty"`
	DownloadCount int64     `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Document) TableName() string { return "documents" }
