package course

import "gorm.io/gorm"

// Course is a published unit of teaching material owned by the
// instructor who created it. Only the owner can see or mutate it
// through the management endpoints.
type Course struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index;not null"`
	SubjectID uint   `json:"subject_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	Overview  string `json:"overview" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}
