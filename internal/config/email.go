package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ResendConfig struct {
	APIKey  string
	APIURL  string
	From    string
	Enabled bool
}

// NewResendConfig reads the Resend API settings. Email delivery is optional:
// when any variable is missing the service runs with delivery disabled so
// plan generation is never blocked on mail configuration.
func NewResendConfig(logger *zap.Logger) *ResendConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	apiURL := os.Getenv("RESEND_API_URL")
	fromEmail := os.Getenv("FROM_EMAIL")
	if apiKey == "" || apiURL == "" || fromEmail == "" {
		logger.Warn("Email environment variables missing, delivery disabled")
		return &ResendConfig{Enabled: false}
	}
	return &ResendConfig{
		APIKey:  apiKey,
		APIURL:  apiURL,
		From:    fromEmail,
		Enabled: true,
	}
}

type EmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

type EmailService struct {
	Config *ResendConfig
	logger *zap.Logger
}

func NewEmailService(lc fx.Lifecycle, config *ResendConfig, logger *zap.Logger) *EmailService {
	service := &EmailService{Config: config, logger: logger}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Email service initialized", zap.Bool("enabled", config.Enabled))
			return nil
		},
	})
	return service
}

var ErrEmailDisabled = fmt.Errorf("email delivery disabled")

func (e *EmailService) SendEmail(to, subject, body string) error {
	if !e.Config.Enabled {
		return ErrEmailDisabled
	}

	payload := EmailRequest{
		From:    e.Config.From,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, e.Config.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+e.Config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&errorResponse)
		return fmt.Errorf("failed to send email, status code: %d, error: %v", resp.StatusCode, errorResponse)
	}

	e.logger.Info("Email sent", zap.String("to", to))
	return nil
}
