package domain

// ResolutionStatus describes how (and how well) an address was
// resolved to a PIN code and delivery post office.
type ResolutionStatus string

// ResolutionStatus enum values
const (
	// PIN and locality keywords agreed on a delivery office.
	StatusSuccess ResolutionStatus = "success"
	// Only a PIN was given; the first delivery office in it was picked.
	StatusSuccessPINOnly ResolutionStatus = "success_pin_only"
	// The PIN has delivery offices but the keywords matched none of them.
	StatusPartialMatchPIN ResolutionStatus = "partial_match_pin"
	// The PIN is known but no office in it is flagged for delivery.
	StatusPartialMatchPINNoDPO ResolutionStatus = "partial_match_pin_no_dpo"
	// Resolved by locality keywords alone to a delivery office.
	StatusSuccessLocality ResolutionStatus = "success_locality"
	// Resolved by locality keywords alone, but only to a non-delivery office.
	StatusSuccessLocalityNonDPO ResolutionStatus = "success_locality_non_dpo"
	// The user-supplied PIN disagrees with the locality prediction.
	StatusPINMismatch ResolutionStatus = "pin_mismatch"
	StatusNotFound    ResolutionStatus = "not_found"
	StatusError       ResolutionStatus = "error"
)

// Resolution is the outcome of resolving one address query.
type Resolution struct {
	Status          ResolutionStatus  `json:"status"`
	PINCode         string            `json:"pincode,omitempty"`
	OfficeName      string            `json:"officeName,omitempty"`
	Delivery        bool              `json:"delivery,omitempty"`
	Score           float64           `json:"score,omitempty"`
	MatchedKeywords map[string]string `json:"matchedKeywords,omitempty"`
	Message         string            `json:"message,omitempty"`

	// PINMismatch is set when validation detects disagreement between
	// the PIN in the input and the PIN predicted from the locality.
	// InputPIN records the user-supplied PIN on any validation outcome,
	// agreement included.
	PINMismatch bool   `json:"pinMismatch,omitempty"`
	InputPIN    string `json:"inputPincode,omitempty"`
}

// Found reports whether the resolution carries a usable suggestion.
func (r Resolution) Found() bool {
	switch r.Status {
	case StatusNotFound, StatusError:
		return false
	}
	return r.PINCode != ""
}

// Suggestion is one row of a quick typeahead search.
type Suggestion struct {
	OfficeName string `json:"officeName"`
	PINCode    string `json:"pincode"`
	District   string `json:"district,omitempty"`
	State      string `json:"state,omitempty"`
	Delivery   bool   `json:"delivery"`
}
