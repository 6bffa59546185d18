package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a student's rating of a course. One review per (user, course),
// enforced at creation. Only approved reviews count toward public listings
// and rating statistics.
type Review struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"index;not null"`
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Rating       int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      string `json:"comment" gorm:"type:text;default:''"`
	IsApproved   bool   `json:"is_approved" gorm:"default:true"`
	HelpfulVotes int    `json:"helpful_votes" gorm:"default:0"`
	IsDeleted    bool   `json:"-" gorm:"default:false"`

	Reports []ReviewReport `json:"reports,omitempty" gorm:"foreignKey:ReviewID"`
}

// ReviewReport is one user's report against a review. A user may report a
// given review at most once. Approving the review clears its reports.
type ReviewReport struct {
	gorm.Model
	ReviewID   uint      `json:"review_id" gorm:"not null;uniqueIndex:idx_report_review_user"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_report_review_user"`
	Reason     string    `json:"reason" gorm:"not null"`
	ReportedAt time.Time `json:"reported_at"`
}

// ReviewHelpfulVote deduplicates helpful votes: one vote per user per review.
type ReviewHelpfulVote struct {
	gorm.Model
	ReviewID uint `json:"review_id" gorm:"not null;uniqueIndex:idx_helpful_review_user"`
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_helpful_review_user"`
}
