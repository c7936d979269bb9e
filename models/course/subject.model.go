package course

import "gorm.io/gorm"

// Subject is a category a course belongs to
type Subject struct {
	gorm.Model
	Title     string `json:"title"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	IsDeleted bool   `gorm:"default:false"`
}
