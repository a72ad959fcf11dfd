package enums

import "fmt"

// QuoteStatus tracks the lifecycle of a partner quote.
type QuoteStatus string

const (
	QuoteStatusPendingAdminApproval  QuoteStatus = "pending_admin_approval"
	QuoteStatusAdminReview           QuoteStatus = "admin_review"
	QuoteStatusTimeRevisionRequested QuoteStatus = "specialist_time_revision_requested"
	QuoteStatusApproved              QuoteStatus = "approved"
	QuoteStatusRejected              QuoteStatus = "rejected"
	QuoteStatusExecuting             QuoteStatus = "executing"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPendingAdminApproval,
	QuoteStatusAdminReview,
	QuoteStatusTimeRevisionRequested,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusExecuting,
}

// String implements fmt.Stringer.
func (q QuoteStatus) String() string {
	return string(q)
}

// IsValid reports whether the value is a known QuoteStatus.
func (q QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == q {
			return true
		}
	}
	return false
}

// InNegotiation reports whether the status participates in the
// time-revision negotiation loop.
func (q QuoteStatus) InNegotiation() bool {
	switch q {
	case QuoteStatusPendingAdminApproval, QuoteStatusAdminReview, QuoteStatusTimeRevisionRequested:
		return true
	default:
		return false
	}
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
