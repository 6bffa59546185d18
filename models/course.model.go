package models

import "gorm.io/gorm"

// Course represents a catalog course. Rating, review count and enrolled
// student count are never stored here; they are recomputed from the review
// and enrollment tables on every fetch.
type Course struct {
	gorm.Model
	Title          string  `json:"title"`
	Description    string  `json:"description" gorm:"type:text"`
	Category       string  `json:"category" gorm:"index"`
	Level          string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Price          float64 `json:"price" gorm:"default:0"`
	InstructorName string  `json:"instructor_name"`
	ThumbnailURL   string  `json:"thumbnail_url"`
	ModulesCount   int     `json:"modules_count" gorm:"default:0"`
	Status         string  `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, INACTIVE
	IsDeleted      bool    `json:"-" gorm:"default:false"`
}
