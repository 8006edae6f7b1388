// Package aws provides AWS API client functionality.
package aws

import (
	"errors"
	"time"
)

// Credential report columns read by the rule.
const (
	ColumnUser                   = "user"
	ColumnPasswordLastUsed       = "password_last_used"
	ColumnAccessKey1LastUsedDate = "access_key_1_last_used_date"
	ColumnAccessKey2LastUsedDate = "access_key_2_last_used_date"
)

// NotAvailable is the credential report value for a credential never used.
const NotAvailable = "N/A"

// RootUserName is the user column value of the root account row.
const RootUserName = "<root_account>"

// ErrEmptyReport is returned when the credential report contains no rows.
var ErrEmptyReport = errors.New("credential report has no rows")

// CredentialReport represents a parsed IAM credential report.
type CredentialReport struct {
	Header []string
	Rows   []CredentialReportRow
}

// CredentialReportRow maps column names from the report header to values.
type CredentialReportRow map[string]string

// Get returns the value of a column and whether the column is present.
func (r CredentialReportRow) Get(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// IsRootUser returns true if this is the root account row.
func (r CredentialReportRow) IsRootUser() bool {
	return r[ColumnUser] == RootUserName
}

// Root returns the first row of the report, which belongs to the root account.
func (c *CredentialReport) Root() (CredentialReportRow, error) {
	if c == nil || len(c.Rows) == 0 {
		return nil, ErrEmptyReport
	}
	return c.Rows[0], nil
}

// ComplianceType is the verdict AWS Config records for a resource.
type ComplianceType string

const (
	Compliant    ComplianceType = "COMPLIANT"
	NonCompliant ComplianceType = "NON_COMPLIANT"
)

// Evaluation is a single compliance verdict submitted to AWS Config.
type Evaluation struct {
	ResourceType      string
	ResourceID        string
	ComplianceType    ComplianceType
	Annotation        string
	OrderingTimestamp time.Time
}
