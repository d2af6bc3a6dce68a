package enums

import "fmt"

// QuoteStatus tracks a supplier quote through acceptance.
type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "PENDING"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusAccepted,
	QuoteStatusRejected,
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
