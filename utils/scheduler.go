package utils

import (
	"certify/database"
	"certify/models"
	"log"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// A verification stuck in processing longer than this was interrupted
// (server restart, crash mid-run) and will never finish on its own
const staleProcessingAge = 30 * time.Minute

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processStaleVerifications flips interrupted processing requests to error so
// the student can upload again. processing is not terminal, so without this a
// crash mid-verification would block the request forever.
func processStaleVerifications() {
	db := database.Database.Db
	cutoff := time.Now().Add(-staleProcessingAge)

	var requests []models.CertificateRequest
	if err := db.Where("status = ? AND updated_at < ? AND is_deleted = false",
		models.StatusProcessing, cutoff).Find(&requests).Error; err != nil {
		logScheduler("Error fetching stale processing requests: " + err.Error())
		return
	}

	for _, request := range requests {
		request.Status = models.StatusError
		db.Save(&request)

		db.Model(&models.Certificate{}).
			Where("request_id = ?", request.ID).
			Updates(map[string]interface{}{
				"verified": false,
				"remark":   "Verification was interrupted, please upload again",
			})

		logScheduler("Request " + request.ID + " moved from processing to error (stale)")
	}
}

// processDueDateReminders emails students whose pending requests are due by the
// end of tomorrow
func processDueDateReminders() {
	db := database.Database.Db

	windowEnd := now.With(time.Now().AddDate(0, 0, 1)).EndOfDay()

	var requests []models.CertificateRequest
	if err := db.Preload("Student").Preload("Subject").
		Where("status = ? AND due_date IS NOT NULL AND due_date > ? AND due_date <= ? AND is_deleted = false",
			models.StatusPending, time.Now(), windowEnd).
		Find(&requests).Error; err != nil {
		logScheduler("Error fetching requests due soon: " + err.Error())
		return
	}

	for _, request := range requests {
		if request.Student.Email == "" {
			continue
		}
		if err := SendDueDateReminderEmail(
			request.Student.Email,
			request.Student.Name,
			request.Subject.Name,
			*request.DueDate,
		); err != nil {
			logScheduler("Failed to send reminder for request " + request.ID + ": " + err.Error())
		}
	}

	logScheduler("Due date reminders processed")
}

// StartStaleVerificationSweep runs every 10 minutes
func StartStaleVerificationSweep(c *cron.Cron) {
	c.AddFunc("*/10 * * * *", func() {
		processStaleVerifications()
	})
	logScheduler("Stale verification sweep started - runs every 10 minutes")
}

// StartDueDateReminders runs daily at 8 AM
func StartDueDateReminders(c *cron.Cron) {
	c.AddFunc("0 8 * * *", func() {
		processDueDateReminders()
	})
	logScheduler("Due date reminder job started - runs daily at 8 AM")
}

// InitializeSchedulers initializes all background jobs
func InitializeSchedulers() *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	StartStaleVerificationSweep(c)
	StartDueDateReminders(c)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
