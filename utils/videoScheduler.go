package utils

import (
	"edvid/config"
	"edvid/database"
	"edvid/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[VIDEO-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// processPendingVideos polls the generation service for every PENDING video
// and flips it to READY or FAILED
func processPendingVideos() {
	db := database.Database.Db

	var pending []models.Video
	if err := db.Where("status = ? AND generation_job_id <> '' AND is_deleted = ?", "PENDING", false).
		Find(&pending).Error; err != nil {
		logScheduler("Error fetching pending videos: " + err.Error())
		return
	}

	if len(pending) == 0 {
		return
	}
	logScheduler(fmt.Sprintf("Checking %d pending video job(s)", len(pending)))

	for _, video := range pending {
		status, err := CheckVideoGeneration(video.GenerationJobID)
		if err != nil {
			logScheduler(fmt.Sprintf("Job %s check failed: %v", video.GenerationJobID, err))
			continue
		}

		switch status.Status {
		case "READY":
			video.Status = "READY"
			video.VideoFilePath = status.VideoURL
			video.MainContentURL = status.MainContentURL
			if err := db.Save(&video).Error; err != nil {
				logScheduler(fmt.Sprintf("Error saving video %d: %v", video.ID, err))
				continue
			}
			logScheduler(fmt.Sprintf("Video %d is READY", video.ID))

			// Notify the space owner (Async)
			go func(v models.Video) {
				var space models.Space
				if err := database.Database.Db.First(&space, v.SpaceID).Error; err != nil {
					return
				}
				var user models.User
				if err := database.Database.Db.First(&user, space.UserID).Error; err != nil {
					return
				}
				SendVideoReadyEmail(user.Email, user.Name, v.Title)
			}(video)
		case "FAILED":
			video.Status = "FAILED"
			if err := db.Save(&video).Error; err != nil {
				logScheduler(fmt.Sprintf("Error saving video %d: %v", video.ID, err))
				continue
			}
			logScheduler(fmt.Sprintf("Video %d generation FAILED: %s", video.ID, status.Error))
		}
	}
}

// StartVideoScheduler starts the cron that tracks pending generation jobs
func StartVideoScheduler() {
	logScheduler("Initializing video generation scheduler...")

	interval := config.AppConfig.PollIntervalMinutes
	if interval <= 0 {
		interval = 1
	}

	c := cron.New()
	c.AddFunc(fmt.Sprintf("@every %dm", interval), processPendingVideos)
	c.Start()

	logScheduler(fmt.Sprintf("Video scheduler started - polling every %dm", interval))
}
