package rule

import (
	"time"

	"github.com/locktivity/config-rule-root-no-access/internal/aws"
)

// UsageWindow is how recent a root credential use must be to fail the rule.
const UsageWindow = 24 * time.Hour

// ReportTimeLayout is the timestamp format used by the IAM credential report.
const ReportTimeLayout = "2006-01-02T15:04:05+00:00"

// Evaluated resource.
const (
	DefaultResourceType = "AWS::::Account"
	DefaultResourceID   = "Root No Access"
)

// Credential report values meaning the credential has no recorded use.
var neverUsedValues = map[string]bool{
	"":               true,
	aws.NotAvailable: true,
	"no_information": true,
	"not_supported":  true,
}

// CheckedFields lists the root account columns inspected, in evaluation order.
var CheckedFields = []string{
	aws.ColumnPasswordLastUsed,
	aws.ColumnAccessKey1LastUsedDate,
	aws.ColumnAccessKey2LastUsedDate,
}
