package models

import "gorm.io/gorm"

// Module is a static training unit. Content is seeded once and never mutated;
// per-user state lives in ModuleProgress.
type Module struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Duration     string `json:"duration"` // display label, e.g. "45 min"
	Introduction string `json:"introduction" gorm:"type:text"`
	VideoURL     string `json:"video_url"`
	OrderIndex   int    `json:"order_index" gorm:"default:0"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`

	Lessons   []Lesson   `json:"lessons" gorm:"foreignKey:ModuleID"`
	Exercises []Exercise `json:"exercises" gorm:"foreignKey:ModuleID"`
	Resources []Resource `json:"resources" gorm:"foreignKey:ModuleID"`
}

// Lesson is an ordered content item within a module
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `json:"-" gorm:"default:false"`
}

// Exercise is a practical task attached to a module
type Exercise struct {
	gorm.Model
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `json:"-" gorm:"default:false"`
}

// Resource is a downloadable or external reference attached to a module
type Resource struct {
	gorm.Model
	ModuleID  uint   `json:"module_id" gorm:"index;not null"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
