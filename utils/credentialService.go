package utils

import (
	"edvid/config"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// IssueCredential asks the external credential service to mint a verifiable
// credential and returns its token URI and transaction hash
func IssueCredential(email, courseName, credentialNumber string) (string, string, error) {
	if config.AppConfig.CredentialApiURL == "" {
		return "", "", fmt.Errorf("credential service is not configured")
	}

	var result struct {
		TokenURI string `json:"tokenUri"`
		TxHash   string `json:"txHash"`
	}

	resp, err := resty.New().
		SetTimeout(60 * time.Second).
		R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.CredentialApiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"recipientEmail":   email,
			"courseName":       courseName,
			"credentialNumber": credentialNumber,
		}).
		SetResult(&result).
		Post(config.AppConfig.CredentialApiURL + "/v1/credentials")
	if err != nil {
		return "", "", fmt.Errorf("failed to reach credential service: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("credential service returned %d: %s", resp.StatusCode(), resp.String())
	}
	if result.TokenURI == "" {
		return "", "", fmt.Errorf("credential service returned no token URI")
	}

	return result.TokenURI, result.TxHash, nil
}
