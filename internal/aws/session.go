package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
)

// Delegation defaults.
const (
	DefaultSessionName     = "ComplianceAudit"
	DefaultSessionDuration = 900 * time.Second
)

// ErrMissingRoleARN is returned when no role is given to assume.
var ErrMissingRoleARN = errors.New("execution role ARN is required")

// SessionOptions describes the role to assume for an invocation.
type SessionOptions struct {
	RoleARN     string
	SessionName string
	Duration    time.Duration
	Region      string
}

// Session holds short-lived delegated credentials for a single invocation.
// It is never cached or shared between invocations.
type Session struct {
	Config  aws.Config
	Region  string
	Expires time.Time
}

// NewSession assumes the configured role and returns a session whose config
// signs requests with the temporary credentials. Credentials are retrieved
// eagerly so that delegation failures are reported here.
func NewSession(ctx context.Context, base aws.Config, stsClient stscreds.AssumeRoleAPIClient, opts SessionOptions) (*Session, error) {
	if opts.RoleARN == "" {
		return nil, ErrMissingRoleARN
	}
	if opts.SessionName == "" {
		opts.SessionName = DefaultSessionName
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultSessionDuration
	}

	provider := stscreds.NewAssumeRoleProvider(stsClient, opts.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.RoleSessionName = opts.SessionName
		o.Duration = opts.Duration
	})
	cache := aws.NewCredentialsCache(provider)

	creds, err := cache.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("assuming role %s: %w", opts.RoleARN, err)
	}

	cfg := base.Copy()
	cfg.Credentials = cache
	if opts.Region != "" {
		cfg.Region = opts.Region
	}

	return &Session{
		Config:  cfg,
		Region:  cfg.Region,
		Expires: creds.Expires,
	}, nil
}
