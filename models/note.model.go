package models

import "gorm.io/gorm"

// Note is a private study note a student keeps against a course
type Note struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Content   string `json:"content" gorm:"type:text"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
