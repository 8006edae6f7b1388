package rule

import "time"

// UsageKind classifies a credential report timestamp field.
type UsageKind int

const (
	UsageNeverUsed UsageKind = iota
	UsageUsed
	UsageMalformed
)

func (k UsageKind) String() string {
	switch k {
	case UsageNeverUsed:
		return "never_used"
	case UsageUsed:
		return "used"
	case UsageMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Usage is the parsed value of a "last used" column.
type Usage struct {
	Kind UsageKind
	At   time.Time // set when Kind is UsageUsed
	Raw  string
}

// ParseUsage parses a credential report "last used" value.
func ParseUsage(raw string) Usage {
	if neverUsedValues[raw] {
		return Usage{Kind: UsageNeverUsed, Raw: raw}
	}

	at, err := time.Parse(ReportTimeLayout, raw)
	if err != nil {
		return Usage{Kind: UsageMalformed, Raw: raw}
	}
	return Usage{Kind: UsageUsed, At: at.UTC(), Raw: raw}
}

// UsedWithin reports whether the credential was used after now-window and
// strictly before now.
func (u Usage) UsedWithin(now time.Time, window time.Duration) bool {
	if u.Kind != UsageUsed {
		return false
	}
	elapsed := now.Sub(u.At)
	return elapsed > 0 && elapsed < window
}
