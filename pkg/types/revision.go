package types

// ItemRevision is a specialist's counter-proposal for a single quote item.
type ItemRevision struct {
	SuggestedDays int    `json:"suggested_days"`
	Reason        string `json:"reason"`
}

// RevisionRequests maps a quote item id to the specialist's suggestion for
// it. Stored as jsonb on revision_requested journal events; empty for every
// other action.
type RevisionRequests map[string]ItemRevision

// Clone returns a copy of the map so callers can mutate safely.
func (r RevisionRequests) Clone() RevisionRequests {
	if r == nil {
		return nil
	}
	out := make(RevisionRequests, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
