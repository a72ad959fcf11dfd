package enums

// NegotiationPhase is the derived position of a quote inside the
// time-revision loop. It is computed at read time from the quote status
// plus the journal and is never persisted.
type NegotiationPhase string

const (
	// NegotiationPhaseAwaitingPartner means a specialist requested a time
	// revision and the partner has not resubmitted yet.
	NegotiationPhaseAwaitingPartner NegotiationPhase = "awaiting_partner"

	// NegotiationPhaseAwaitingAdmin means the quote sits with the
	// admin/specialist side, either fresh or after a partner resubmission.
	NegotiationPhaseAwaitingAdmin NegotiationPhase = "awaiting_admin"

	// NegotiationPhaseClosed means the quote left the negotiation loop
	// (approved, rejected or executing).
	NegotiationPhaseClosed NegotiationPhase = "closed"
)

// String implements fmt.Stringer.
func (p NegotiationPhase) String() string {
	return string(p)
}
