package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Validation errors for the invocation event.
var (
	ErrMissingExecutionRole = errors.New("event is missing executionRoleArn")
	ErrMissingResultToken   = errors.New("event is missing resultToken")
	ErrInvalidRuleARN       = errors.New("cannot derive region from configRuleArn")
)

// Event is the AWS Config rule invocation, with an optional region override.
type Event struct {
	events.ConfigEvent
	RegionName string `json:"region_name,omitempty"`
}

// Validate checks that the fields needed for an evaluation are present.
func (e Event) Validate() error {
	if e.ExecutionRoleArn == "" {
		return ErrMissingExecutionRole
	}
	if e.ResultToken == "" {
		return ErrMissingResultToken
	}
	return nil
}

// Region returns the override if set, otherwise the region segment of the rule ARN.
func (e Event) Region() (string, error) {
	if e.RegionName != "" {
		return e.RegionName, nil
	}

	// arn:aws:config:<region>:<account>:config-rule/<id>
	parts := strings.Split(e.ConfigRuleArn, ":")
	if len(parts) < 4 || parts[3] == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidRuleARN, e.ConfigRuleArn)
	}
	return parts[3], nil
}
