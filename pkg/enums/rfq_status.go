package enums

import "fmt"

// RfqStatus tracks whether a sourcing request is still taking quotes.
type RfqStatus string

const (
	RfqStatusOpen   RfqStatus = "OPEN"
	RfqStatusClosed RfqStatus = "CLOSED"
)

var validRfqStatuses = []RfqStatus{
	RfqStatusOpen,
	RfqStatusClosed,
}

// String implements fmt.Stringer.
func (s RfqStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RfqStatus.
func (s RfqStatus) IsValid() bool {
	for _, candidate := range validRfqStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRfqStatus converts raw input into an RfqStatus.
func ParseRfqStatus(value string) (RfqStatus, error) {
	for _, candidate := range validRfqStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq status %q", value)
}
