package enums

import (
	"fmt"
	"strings"
)

// CustomsStatus tracks a customs declaration through clearance.
type CustomsStatus string

const (
	CustomsStatusDraft     CustomsStatus = "DRAFT"
	CustomsStatusSubmitted CustomsStatus = "SUBMITTED"
	CustomsStatusInReview  CustomsStatus = "IN_REVIEW"
	CustomsStatusCleared   CustomsStatus = "CLEARED"
	CustomsStatusRejected  CustomsStatus = "REJECTED"
)

var validCustomsStatuses = []CustomsStatus{
	CustomsStatusDraft,
	CustomsStatusSubmitted,
	CustomsStatusInReview,
	CustomsStatusCleared,
	CustomsStatusRejected,
}

// customsTransitions allows the forward clearance path plus resubmission
// after a rejection. CLEARED is terminal.
var customsTransitions = map[CustomsStatus][]CustomsStatus{
	CustomsStatusDraft:     {CustomsStatusSubmitted},
	CustomsStatusSubmitted: {CustomsStatusInReview, CustomsStatusCleared, CustomsStatusRejected},
	CustomsStatusInReview:  {CustomsStatusCleared, CustomsStatusRejected},
	CustomsStatusRejected:  {CustomsStatusSubmitted},
	CustomsStatusCleared:   nil,
}

// String implements fmt.Stringer.
func (s CustomsStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CustomsStatus.
func (s CustomsStatus) IsValid() bool {
	for _, candidate := range validCustomsStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether moving from s to next is allowed.
func (s CustomsStatus) CanTransition(next CustomsStatus) bool {
	for _, candidate := range customsTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseCustomsStatus converts raw input into a CustomsStatus, case-insensitively.
func ParseCustomsStatus(value string) (CustomsStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validCustomsStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customs status %q", value)
}
