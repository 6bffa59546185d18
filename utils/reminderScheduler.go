package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lms/models"
)

const staleAfterDays = 14

// InitializeReminderScheduler starts the daily job that nudges students whose
// active, unfinished enrollments have gone untouched for two weeks.
func InitializeReminderScheduler(db *gorm.DB) {
	c := cron.New()

	// Daily at 9 AM server time
	c.AddFunc("0 9 * * *", func() {
		log.Println("[REMINDER-SCHEDULER] Running daily stale-enrollment check...")
		SendStaleEnrollmentReminders(db)
	})

	c.Start()
	log.Println("[REMINDER-SCHEDULER] Reminder scheduler started - runs daily at 9 AM")
}

// SendStaleEnrollmentReminders emails every student with an active enrollment
// below 100% progress whose last access is older than the staleness window.
func SendStaleEnrollmentReminders(db *gorm.DB) {
	cutoff := time.Now().AddDate(0, 0, -staleAfterDays)

	var enrollments []models.Enrollment
	err := db.
		Where("is_active = ? AND progress < ? AND last_accessed_at < ?", true, 100, cutoff).
		Find(&enrollments).Error
	if err != nil {
		log.Printf("[REMINDER-SCHEDULER] Failed to fetch stale enrollments: %v", err)
		return
	}

	for _, e := range enrollments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = ?", e.UserID, false).First(&user).Error; err != nil {
			continue
		}
		var course models.Course
		if err := db.Where("id = ? AND is_deleted = ?", e.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		SendReminderEmail(user.Email, user.Name, course.Title, e.Progress)
	}

	log.Printf("[REMINDER-SCHEDULER] Processed %d stale enrollments", len(enrollments))
}
