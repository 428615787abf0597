package utils

import (
	"edvid/config"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// TutorReply asks the LLM backend for a tutoring answer scoped to one course,
// and optionally one lesson within it
func TutorReply(courseName, lessonName, message string) (string, error) {
	if config.AppConfig.LLMApiURL == "" {
		return "", fmt.Errorf("tutor service is not configured")
	}

	systemPrompt := fmt.Sprintf("You are a helpful course tutor for the course %q. Answer only questions related to this course material.", courseName)
	if lessonName != "" {
		systemPrompt += fmt.Sprintf(" The learner is currently on the lesson %q.", lessonName)
	}

	var result chatResponse

	resp, err := resty.New().
		SetTimeout(60 * time.Second).
		R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.LLMApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Model: config.AppConfig.LLMModel,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: message},
			},
		}).
		SetResult(&result).
		Post(config.AppConfig.LLMApiURL + "/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to reach tutor backend: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("tutor backend returned %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("tutor backend returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}
