package aws

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCredentialReport parses the CSV credential report. Each row is keyed by
// the header's column names and rows keep their report order. The root row
// has missing or empty access key usage dates set to N/A.
func ParseCredentialReport(content []byte) (*CredentialReport, error) {
	if !utf8.Valid(content) {
		return nil, errors.New("decoding credential report: content is not valid UTF-8")
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}

	if len(records) == 0 {
		return &CredentialReport{Rows: []CredentialReportRow{}}, nil
	}

	header := records[0]
	report := &CredentialReport{
		Header: header,
		Rows:   make([]CredentialReportRow, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		row := make(CredentialReportRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		report.Rows = append(report.Rows, row)
	}

	if len(report.Rows) > 0 {
		normalizeRootRow(report.Rows[0])
	}

	return report, nil
}

// normalizeRootRow marks access keys without a usage date as never used.
func normalizeRootRow(row CredentialReportRow) {
	for _, col := range []string{ColumnAccessKey1LastUsedDate, ColumnAccessKey2LastUsedDate} {
		if v, ok := row[col]; !ok || v == "" {
			row[col] = NotAvailable
		}
	}
}
