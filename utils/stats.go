package utils

import (
	"math"

	"gorm.io/gorm"

	"lms/models"
)

// ReviewStats is the read-time rating rollup for one course
type ReviewStats struct {
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// EnrollmentStats is the read-time enrollment rollup across the platform
type EnrollmentStats struct {
	TotalEnrollments     int64   `json:"total_enrollments"`
	CompletedEnrollments int64   `json:"completed_enrollments"`
	AverageProgress      float64 `json:"average_progress"`
}

// CourseReviewStats aggregates approved reviews for a course. Nothing is
// cached or stored; every call recomputes from the review table. With no
// approved reviews both fields are zero.
func CourseReviewStats(db *gorm.DB, courseID uint) (ReviewStats, error) {
	var row struct {
		Average float64
		Total   int64
	}

	err := db.Model(&models.Review{}).
		Where("course_id = ? AND is_approved = ? AND is_deleted = ?", courseID, true, false).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Scan(&row).Error
	if err != nil {
		return ReviewStats{}, err
	}

	return ReviewStats{
		AverageRating: RoundRating(row.Average),
		TotalReviews:  row.Total,
	}, nil
}

// CourseEnrolledCount counts active enrollments for a course
func CourseEnrolledCount(db *gorm.DB, courseID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Enrollment{}).
		Where("course_id = ? AND is_active = ?", courseID, true).
		Count(&count).Error
	return count, err
}

// PlatformEnrollmentStats folds over all enrollments, active and inactive
func PlatformEnrollmentStats(db *gorm.DB) (EnrollmentStats, error) {
	var total, completed int64

	if err := db.Model(&models.Enrollment{}).Count(&total).Error; err != nil {
		return EnrollmentStats{}, err
	}
	if err := db.Model(&models.Enrollment{}).Where("progress = ?", 100).Count(&completed).Error; err != nil {
		return EnrollmentStats{}, err
	}

	var row struct {
		Average float64
	}
	err := db.Model(&models.Enrollment{}).
		Select("COALESCE(AVG(progress), 0) AS average").
		Scan(&row).Error
	if err != nil {
		return EnrollmentStats{}, err
	}

	return EnrollmentStats{
		TotalEnrollments:     total,
		CompletedEnrollments: completed,
		AverageProgress:      RoundRating(row.Average),
	}, nil
}

// RoundRating rounds to 1 decimal place
func RoundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
