package rule

import (
	"strings"
	"time"

	"github.com/locktivity/config-rule-root-no-access/internal/aws"
)

// Finding is the outcome of checking one root account column.
type Finding struct {
	Field  string
	Usage  Usage
	Recent bool
}

// Result is the compliance verdict for the root account.
type Result struct {
	Status   aws.ComplianceType
	Findings []Finding
}

// Evaluate checks the root account row for credential use within UsageWindow
// of now. The status starts COMPLIANT and any recent use makes it
// NON_COMPLIANT. Columns missing from the row are reported as malformed.
func Evaluate(row aws.CredentialReportRow, now time.Time) Result {
	now = now.UTC().Truncate(time.Second)

	result := Result{
		Status:   aws.Compliant,
		Findings: make([]Finding, 0, len(CheckedFields)),
	}

	for _, field := range CheckedFields {
		var usage Usage
		if raw, ok := row.Get(field); ok {
			usage = ParseUsage(raw)
		} else {
			usage = Usage{Kind: UsageMalformed}
		}

		finding := Finding{
			Field:  field,
			Usage:  usage,
			Recent: usage.UsedWithin(now, UsageWindow),
		}
		if finding.Recent {
			result.Status = aws.NonCompliant
		}
		result.Findings = append(result.Findings, finding)
	}

	return result
}

// RecentFields returns the columns that showed recent use.
func (r Result) RecentFields() []string {
	var fields []string
	for _, f := range r.Findings {
		if f.Recent {
			fields = append(fields, f.Field)
		}
	}
	return fields
}

// Annotation describes a non-compliant result for AWS Config.
func (r Result) Annotation() string {
	fields := r.RecentFields()
	if len(fields) == 0 {
		return ""
	}
	return "Root account used within the last 24 hours: " + strings.Join(fields, ", ")
}
