package domain

import "time"

// TextPosition anchors the overlay text of a carousel slide.
type TextPosition string

const (
	PosTopLeft      TextPosition = "top-left"
	PosTopCenter    TextPosition = "top-center"
	PosTopRight     TextPosition = "top-right"
	PosCenterLeft   TextPosition = "center-left"
	PosCenter       TextPosition = "center"
	PosCenterRight  TextPosition = "center-right"
	PosBottomLeft   TextPosition = "bottom-left"
	PosBottomCenter TextPosition = "bottom-center"
	PosBottomRight  TextPosition = "bottom-right"
)

type TextDirection string

const (
	DirHorizontal TextDirection = "horizontal"
	DirVertical   TextDirection = "vertical"
)

type CarouselItem struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	Title         string        `gorm:"size:191" json:"title"`
	ImageURL      string        `gorm:"size:512;not null" json:"imageUrl"`
	LinkURL       *string       `gorm:"size:512" json:"linkUrl,omitempty"`
	LinkText      *string       `gorm:"size:191" json:"linkText,omitempty"`
	Order         int           `gorm:"column:sort_order;index" json:"order"`
	IsActive      bool          `json:"isActive"`
	TextPosition  TextPosition  `gorm:"size:16" json:"textPosition"`
	TextDirection TextDirection `gorm:"size:16" json:"textDirection"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (CarouselItem) TableName() string { return "carousel_items" }
