package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a student's relationship to a course. The (user, course)
// pair is unique for the lifetime of the row: unenrolling flips IsActive and
// re-enrolling reactivates the same row, it is never recreated.
// CompletionDate is set iff Progress == 100.
type Enrollment struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID          uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	Progress          int        `json:"progress" gorm:"default:0"` // 0-100
	StartDate         time.Time  `json:"start_date"`
	CompletionDate    *time.Time `json:"completion_date"`
	CertificateIssued bool       `json:"certificate_issued" gorm:"default:false"`
	CertificateURL    string     `json:"certificate_url" gorm:"default:''"`
	LastAccessedAt    time.Time  `json:"last_accessed_at"`
	IsActive          bool       `json:"is_active" gorm:"default:true"`

	CompletedModules []ModuleCompletion `json:"completed_modules" gorm:"foreignKey:EnrollmentID"`
}

// ModuleCompletion marks one course module as completed within an enrollment.
// An index can be completed at most once; re-submitting it is a no-op.
type ModuleCompletion struct {
	gorm.Model
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_completion_enrollment_module"`
	ModuleIndex  int       `json:"module_index" gorm:"not null;uniqueIndex:idx_completion_enrollment_module"`
	CompletedAt  time.Time `json:"completed_at"`
}
