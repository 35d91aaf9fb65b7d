// config/env.go
package config

import (
	"log"
	"os"
)

// SMSConfig holds the Twilio credentials the service cannot start without
type SMSConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// LoadSMSConfig reads the SMS provider configuration from the
// environment and terminates the process when any value is missing.
func LoadSMSConfig() SMSConfig {
	cfg := SMSConfig{
		AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		FromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),
	}

	if cfg.AccountSID == "" {
		log.Fatal("TWILIO_ACCOUNT_SID environment variable is required")
	}
	if cfg.AuthToken == "" {
		log.Fatal("TWILIO_AUTH_TOKEN environment variable is required")
	}
	if cfg.FromNumber == "" {
		log.Fatal("TWILIO_PHONE_NUMBER environment variable is required")
	}

	return cfg
}
