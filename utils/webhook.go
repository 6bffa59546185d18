package utils

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"

	"lms/config"
)

// NotifyCourseCompletion posts a completion event to the configured webhook.
// Failures are logged only; the student's request never waits on or sees
// webhook errors.
func NotifyCourseCompletion(userID, courseID uint, certificateNumber string) {
	webhookURL := config.AppConfig.CompletionWebhookURL
	if webhookURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":             "course.completed",
			"userId":            userID,
			"courseId":          courseID,
			"certificateNumber": certificateNumber,
			"completedAt":       time.Now().UTC(),
		}).
		Post(webhookURL)
	if err != nil {
		log.Printf("Completion webhook failed: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Completion webhook returned %d: %s", resp.StatusCode(), resp.String())
	}
}
