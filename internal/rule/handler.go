// Package rule implements the root account usage AWS Config rule.
package rule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/locktivity/config-rule-root-no-access/internal/aws"
)

// Handler evaluates the rule for one invocation at a time. It holds no
// per-invocation state; every call assumes its own session.
type Handler struct {
	config Config
	logger *slog.Logger

	loadConfig func(ctx context.Context, region string) (awssdk.Config, error)
	newSTS     func(cfg awssdk.Config) stscreds.AssumeRoleAPIClient
	newClient  func(sess *aws.Session) *aws.Client
	now        func() time.Time
}

// New creates a Handler with the given configuration.
func New(cfg Config, logger *slog.Logger) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		config:     cfg,
		logger:     logger,
		loadConfig: loadDefaultConfig,
		newSTS: func(awsCfg awssdk.Config) stscreds.AssumeRoleAPIClient {
			return sts.NewFromConfig(awsCfg)
		},
		newClient: aws.NewClient,
		now:       time.Now,
	}, nil
}

func loadDefaultConfig(ctx context.Context, region string) (awssdk.Config, error) {
	return config.LoadDefaultConfig(ctx, config.WithRegion(region))
}

// Handle runs one rule invocation: assume the execution role, fetch the
// credential report, evaluate the root account and submit one evaluation.
// Any returned error fails the invocation.
func (h *Handler) Handle(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	region, err := event.Region()
	if err != nil {
		return err
	}

	logger := h.logger.With("config_rule", event.ConfigRuleName, "region", region)
	logger.InfoContext(ctx, "evaluating root account usage")

	base, err := h.loadConfig(ctx, region)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	sess, err := aws.NewSession(ctx, base, h.newSTS(base), aws.SessionOptions{
		RoleARN:     event.ExecutionRoleArn,
		SessionName: h.config.SessionName,
		Duration:    h.config.SessionDuration,
		Region:      region,
	})
	if err != nil {
		logger.ErrorContext(ctx, "role assumption failed", "role_arn", event.ExecutionRoleArn, "error", err)
		return err
	}
	logger.DebugContext(ctx, "assumed execution role", "role_arn", event.ExecutionRoleArn, "expires", sess.Expires)

	client := h.newClient(sess)
	client.OnPoll = func(attempt int, state string) {
		logger.DebugContext(ctx, "credential report state", "attempt", attempt, "state", state)
	}

	result, err := h.evaluate(ctx, logger, client)
	if err != nil {
		return err
	}

	evaluation := aws.Evaluation{
		ResourceType:      h.config.ResourceType,
		ResourceID:        h.config.ResourceID,
		ComplianceType:    result.Status,
		Annotation:        result.Annotation(),
		OrderingTimestamp: h.now(),
	}
	if err := client.PutEvaluations(ctx, event.ResultToken, []aws.Evaluation{evaluation}); err != nil {
		logger.ErrorContext(ctx, "submitting evaluation failed", "error", err)
		return err
	}

	logger.InfoContext(ctx, "evaluation submitted", "compliance", string(result.Status))
	return nil
}

// evaluate fetches the credential report and checks the root account row.
func (h *Handler) evaluate(ctx context.Context, logger *slog.Logger, client *aws.Client) (*Result, error) {
	report, err := client.GetCredentialReport(ctx, h.config.PollPolicy)
	if err != nil {
		logger.ErrorContext(ctx, "credential report unavailable", "error", err)
		return nil, err
	}

	root, err := report.Root()
	if err != nil {
		return nil, err
	}
	if !root.IsRootUser() {
		logger.WarnContext(ctx, "first credential report row is not the root account", "user", root[aws.ColumnUser])
	}

	result := Evaluate(root, h.now())
	for _, f := range result.Findings {
		if f.Usage.Kind == UsageMalformed {
			logger.WarnContext(ctx, "unrecognised last used value", "field", f.Field, "value", f.Usage.Raw)
			continue
		}
		logger.DebugContext(ctx, "checked root credential", "field", f.Field, "usage", f.Usage.Kind.String(), "recent", f.Recent)
	}

	return &result, nil
}
