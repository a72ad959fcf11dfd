package enums

import "fmt"

// ReviewAction identifies the kind of entry appended to the quote
// time-review journal. The journal is append-only; the newest event of a
// given action is the authoritative one for that action.
type ReviewAction string

const (
	ReviewActionRevisionRequested ReviewAction = "revision_requested"
	ReviewActionPartnerUpdated    ReviewAction = "partner_updated"
	ReviewActionSentToAdmin       ReviewAction = "sent_to_admin"
	ReviewActionAdminApproved     ReviewAction = "admin_approved"
	ReviewActionAdminRejected     ReviewAction = "admin_rejected"
)

var validReviewActions = []ReviewAction{
	ReviewActionRevisionRequested,
	ReviewActionPartnerUpdated,
	ReviewActionSentToAdmin,
	ReviewActionAdminApproved,
	ReviewActionAdminRejected,
}

// String implements fmt.Stringer.
func (a ReviewAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ReviewAction.
func (a ReviewAction) IsValid() bool {
	for _, candidate := range validReviewActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseReviewAction converts raw input into a ReviewAction.
func ParseReviewAction(value string) (ReviewAction, error) {
	for _, candidate := range validReviewActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid review action %q", value)
}
