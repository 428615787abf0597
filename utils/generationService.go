package utils

import (
	"edvid/config"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// GenerationStatus is the status payload returned by the external renderer
type GenerationStatus struct {
	JobID          string `json:"jobId"`
	Status         string `json:"status"` // PENDING, READY, FAILED
	VideoURL       string `json:"videoUrl"`
	MainContentURL string `json:"mainContentUrl"`
	Error          string `json:"error"`
}

func generationClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.AppConfig.GenerationApiURL).
		SetHeader("Authorization", "Bearer "+config.AppConfig.GenerationApiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

// RequestVideoGeneration submits a prompt to the renderer and returns the job ID
func RequestVideoGeneration(title, prompt string) (string, error) {
	if config.AppConfig.GenerationApiURL == "" {
		return "", fmt.Errorf("generation service is not configured")
	}

	var result struct {
		JobID string `json:"jobId"`
	}

	resp, err := generationClient().R().
		SetBody(map[string]string{
			"title":  title,
			"prompt": prompt,
		}).
		SetResult(&result).
		Post("/v1/generations")
	if err != nil {
		return "", fmt.Errorf("failed to reach generation service: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode(), resp.String())
	}
	if result.JobID == "" {
		return "", fmt.Errorf("generation service returned no job id")
	}

	return result.JobID, nil
}

// CheckVideoGeneration polls the renderer for the state of one job
func CheckVideoGeneration(jobID string) (*GenerationStatus, error) {
	var status GenerationStatus

	resp, err := generationClient().R().
		SetResult(&status).
		Get("/v1/generations/" + jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to reach generation service: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode(), resp.String())
	}

	return &status, nil
}
