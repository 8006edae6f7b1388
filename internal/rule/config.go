package rule

import (
	"errors"
	"fmt"
	"time"

	"github.com/locktivity/config-rule-root-no-access/internal/aws"
	"github.com/locktivity/config-rule-root-no-access/internal/retry"
)

// STS accepts session durations between 15 minutes and 12 hours.
const (
	minSessionDuration = 15 * time.Minute
	maxSessionDuration = 12 * time.Hour
)

// Config holds rule settings.
type Config struct {
	// PollPolicy bounds the wait for credential report generation.
	PollPolicy retry.Policy

	SessionName     string
	SessionDuration time.Duration

	ResourceType string
	ResourceID   string
}

// DefaultConfig returns the standard rule settings.
func DefaultConfig() Config {
	return Config{
		PollPolicy:      retry.DefaultPolicy(),
		SessionName:     aws.DefaultSessionName,
		SessionDuration: aws.DefaultSessionDuration,
		ResourceType:    DefaultResourceType,
		ResourceID:      DefaultResourceID,
	}
}

// Validate checks the configuration for values AWS would reject.
func (c Config) Validate() error {
	if err := c.PollPolicy.Validate(); err != nil {
		return fmt.Errorf("poll policy: %w", err)
	}
	if c.SessionName == "" {
		return errors.New("session name is required")
	}
	if c.SessionDuration < minSessionDuration || c.SessionDuration > maxSessionDuration {
		return fmt.Errorf("session duration %s outside %s-%s", c.SessionDuration, minSessionDuration, maxSessionDuration)
	}
	if c.ResourceType == "" || c.ResourceID == "" {
		return errors.New("resource type and id are required")
	}
	return nil
}
