package domain

import "time"

// ProjectCategory buckets a project on the public site.
type ProjectCategory string

const (
	CategoryNew     ProjectCategory = "new"
	CategoryClassic ProjectCategory = "classic"
	CategoryFuture  ProjectCategory = "future"
)

// DetailItem is one label/value row in a project's spec table.
type DetailItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProjectDetails is the free-form content bag attached to a project.
// Relationally it lives in a single JSON column; the document backend
// stores it inline.
type ProjectDetails struct {
	Specs       []DetailItem `json:"specs,omitempty"`
	Features    []string     `json:"features,omitempty"`
	Description string       `json:"description,omitempty"`
	Images      []string     `json:"images,omitempty"`
}

type Project struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Title       string          `gorm:"size:191;not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Category    ProjectCategory `gorm:"size:16;index" json:"category"`
	Details     ProjectDetails  `gorm:"serializer:json" json:"details"`
	Order       int             `gorm:"column:sort_order;index" json:"order"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Owned: images die with the project. Documents and handbooks only
	// point at it and are detached instead.
	Images    []ProjectImage `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Documents []Document     `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
	Handbooks []Handbook     `gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Project) TableName() string { return "projects" }

type ProjectImage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
	Order     int       `gorm:"column:sort_order" json:"order"`
	ProjectID string    `gorm:"size:36;index;not null" json:"projectId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProjectImage) TableName() string { return "project_images" }
