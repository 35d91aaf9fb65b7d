package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers a verification code to a phone number and
// returns a provider message identifier.
type SMSSender interface {
	SendOTP(ctx context.Context, phoneNumber, otp string) (string, error)
}

// TwilioService handles SMS sending using the Twilio Messages API
type TwilioService struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	APIBase    string
	Client     *http.Client
}

// twilioMessageResponse represents the response from the Twilio Messages API
type twilioMessageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// NewTwilioService creates a new Twilio SMS service instance
func NewTwilioService(accountSID, authToken, fromNumber string) *TwilioService {
	return &TwilioService{
		AccountSID: accountSID,
		AuthToken:  authToken,
		FromNumber: fromNumber,
		APIBase:    "https://api.twilio.com",
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SendOTP sends a verification code via SMS and returns the message SID
func (s *TwilioService) SendOTP(ctx context.Context, phoneNumber, otp string) (string, error) {
	body := fmt.Sprintf("Your Chatline verification code is: %s. This code will expire in 5 minutes.", otp)

	form := url.Values{}
	form.Set("To", phoneNumber)
	form.Set("From", s.FromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.APIBase, s.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.SetBasicAuth(s.AccountSID, s.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("SMS API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var msgResp twilioMessageResponse
	if err := json.Unmarshal(respBody, &msgResp); err != nil {
		return "", fmt.Errorf("failed to parse SMS response: %w", err)
	}

	return msgResp.SID, nil
}
