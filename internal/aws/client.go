package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	configservice "github.com/aws/aws-sdk-go-v2/service/configservice"
	configtypes "github.com/aws/aws-sdk-go-v2/service/configservice/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"

	"github.com/locktivity/config-rule-root-no-access/internal/retry"
)

// ReportUnavailableMessage is the failure signal used when the credential
// report does not complete within the poll budget.
const ReportUnavailableMessage = "Fail: rootUse - no CredentialReport available."

// ErrReportUnavailable is returned when credential report generation never
// reaches the COMPLETE state.
var ErrReportUnavailable = errors.New(ReportUnavailableMessage)

// MaxAnnotationLength is the longest annotation AWS Config accepts.
const MaxAnnotationLength = 256

// IAMAPI is the subset of IAM operations used for the credential report.
type IAMAPI interface {
	GenerateCredentialReport(ctx context.Context, params *iam.GenerateCredentialReportInput, optFns ...func(*iam.Options)) (*iam.GenerateCredentialReportOutput, error)
	GetCredentialReport(ctx context.Context, params *iam.GetCredentialReportInput, optFns ...func(*iam.Options)) (*iam.GetCredentialReportOutput, error)
}

// ConfigServiceAPI is the subset of AWS Config operations used to report results.
type ConfigServiceAPI interface {
	PutEvaluations(ctx context.Context, params *configservice.PutEvaluationsInput, optFns ...func(*configservice.Options)) (*configservice.PutEvaluationsOutput, error)
}

// Client provides the AWS calls made by a single rule invocation.
type Client struct {
	iam    IAMAPI
	config ConfigServiceAPI

	// OnPoll, when set, is called after each report generation attempt.
	OnPoll func(attempt int, state string)
}

// NewClient creates a client that signs requests with the session's credentials.
func NewClient(sess *Session) *Client {
	return NewClientFromAPIs(iam.NewFromConfig(sess.Config), configservice.NewFromConfig(sess.Config))
}

// NewClientFromAPIs creates a client from already constructed service APIs.
func NewClientFromAPIs(iamAPI IAMAPI, configAPI ConfigServiceAPI) *Client {
	return &Client{iam: iamAPI, config: configAPI}
}

// GetCredentialReport requests a credential report, polls until it is
// complete and returns the parsed content. If the policy runs out before the
// report completes, ErrReportUnavailable is returned.
func (c *Client) GetCredentialReport(ctx context.Context, policy retry.Policy) (*CredentialReport, error) {
	err := policy.Do(ctx, func(ctx context.Context, attempt int) (bool, error) {
		output, err := c.iam.GenerateCredentialReport(ctx, &iam.GenerateCredentialReportInput{})
		if err != nil {
			return false, fmt.Errorf("generating credential report: %w", err)
		}
		if c.OnPoll != nil {
			c.OnPoll(attempt, string(output.State))
		}
		return output.State == iamtypes.ReportStateTypeComplete, nil
	})
	if errors.Is(err, retry.ErrExhausted) {
		return nil, ErrReportUnavailable
	}
	if err != nil {
		return nil, err
	}

	output, err := c.iam.GetCredentialReport(ctx, &iam.GetCredentialReportInput{})
	if err != nil {
		return nil, fmt.Errorf("getting credential report: %w", err)
	}

	report, err := ParseCredentialReport(output.Content)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// PutEvaluations submits evaluations for the rule invocation identified by
// resultToken. Entries rejected by AWS Config are reported as an error.
func (c *Client) PutEvaluations(ctx context.Context, resultToken string, evaluations []Evaluation) error {
	input := &configservice.PutEvaluationsInput{
		ResultToken: aws.String(resultToken),
		Evaluations: make([]configtypes.Evaluation, 0, len(evaluations)),
	}
	for _, e := range evaluations {
		input.Evaluations = append(input.Evaluations, toConfigEvaluation(e))
	}

	output, err := c.config.PutEvaluations(ctx, input)
	if err != nil {
		return fmt.Errorf("putting evaluations: %w", err)
	}
	if len(output.FailedEvaluations) > 0 {
		return fmt.Errorf("putting evaluations: %d of %d rejected", len(output.FailedEvaluations), len(evaluations))
	}
	return nil
}

func toConfigEvaluation(e Evaluation) configtypes.Evaluation {
	out := configtypes.Evaluation{
		ComplianceResourceType: aws.String(e.ResourceType),
		ComplianceResourceId:   aws.String(e.ResourceID),
		ComplianceType:         configtypes.ComplianceType(e.ComplianceType),
		OrderingTimestamp:      aws.Time(e.OrderingTimestamp),
	}
	if e.Annotation != "" {
		out.Annotation = aws.String(truncate(e.Annotation, MaxAnnotationLength))
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
