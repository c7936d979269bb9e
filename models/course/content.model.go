package course

import "gorm.io/gorm"

// Valid item type names accepted by the content editor
const (
	ItemTypeText  = "text"
	ItemTypeVideo = "video"
	ItemTypeImage = "image"
	ItemTypeFile  = "file"
)

// Content links a module to exactly one item (text, video, image or
// file) and carries the item's display order within the module.
type Content struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	ItemType   string `json:"item_type" gorm:"index;not null"` // text, video, image, file
	ItemID     uint   `json:"item_id" gorm:"index;not null"`
	OrderIndex int    `json:"order_index" gorm:"default:0"` // Order within module, 0-based
	IsDeleted  bool   `gorm:"default:false"`
}

// Item is the shared capability of the four content item types. The
// content list endpoints use it to describe items without caring about
// the concrete type.
type Item interface {
	Kind() string
	Summary() string
	ItemID() uint
}

// Text holds written course material
type Text struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Content   string `json:"content" gorm:"type:text"`
	IsDeleted bool   `gorm:"default:false"`
}

func (t Text) Kind() string    { return ItemTypeText }
func (t Text) Summary() string { return t.Title }
func (t Text) ItemID() uint    { return t.ID }

// Video holds an embeddable video URL
type Video struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index;not null"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsDeleted bool   `gorm:"default:false"`
}

func (v Video) Kind() string    { return ItemTypeVideo }
func (v Video) Summary() string { return v.Title }
func (v Video) ItemID() uint    { return v.ID }

// Image holds an image location
type Image struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index;not null"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsDeleted bool   `gorm:"default:false"`
}

func (i Image) Kind() string    { return ItemTypeImage }
func (i Image) Summary() string { return i.Title }
func (i Image) ItemID() uint    { return i.ID }

// File holds a downloadable file location
type File struct {
	gorm.Model
	OwnerID   uint   `json:"owner_id" gorm:"index;not null"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsDeleted bool   `gorm:"default:false"`
}

func (f File) Kind() string    { return ItemTypeFile }
func (f File) Summary() string { return f.Title }
func (f File) ItemID() uint    { return f.ID }

// ValidItemType reports whether name is one of the four allowed item
// types. Anything else must be rejected before touching the database.
func ValidItemType(name string) bool {
	switch name {
	case ItemTypeText, ItemTypeVideo, ItemTypeImage, ItemTypeFile:
		return true
	}
	return false
}
