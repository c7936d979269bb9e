package utils

import (
	"coursehub/config"
	courseModels "coursehub/models/course"
	"log"
	"strconv"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logPurge logs purge job events with timestamp
func logPurge(message string) {
	log.Printf("[PURGE-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeSoftDeleted permanently removes rows that were soft-deleted
// before the retention cutoff. Live rows are never touched.
func purgeSoftDeleted(db *gorm.DB) {
	retention := config.AppConfig.PurgeRetentionDays
	cutoff := now.BeginningOfDay().AddDate(0, 0, -retention)

	targets := []interface{}{
		&courseModels.Content{},
		&courseModels.Text{},
		&courseModels.Video{},
		&courseModels.Image{},
		&courseModels.File{},
		&courseModels.Module{},
		&courseModels.Course{},
	}

	for _, model := range targets {
		result := db.Unscoped().Where("is_deleted = ? AND updated_at < ?", true, cutoff).Delete(model)
		if result.Error != nil {
			logPurge("Error purging rows: " + result.Error.Error())
			continue
		}
		if result.RowsAffected > 0 {
			logPurge("Purged " + strconv.FormatInt(result.RowsAffected, 10) + " rows")
		}
	}
}

// StartPurgeScheduler runs the soft-delete purge every night
func StartPurgeScheduler(db *gorm.DB) {
	c := cron.New()

	if _, err := c.AddFunc("30 2 * * *", func() {
		purgeSoftDeleted(db)
	}); err != nil {
		logPurge("Failed to schedule purge job: " + err.Error())
		return
	}

	c.Start()
	logPurge("Purge scheduler started")
}
