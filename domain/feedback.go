package domain

// Feedback is a user-reported correction for a resolution the system
// got wrong, e.g. a mismatch between the suggested and the actual PIN.
type Feedback struct {
	Query          string `json:"query" bson:"query"`
	SuggestedPIN   string `json:"suggestedPincode" bson:"suggestedPincode"`
	ReportedPIN    string `json:"reportedPincode" bson:"reportedPincode"`
	ReportedOffice string `json:"reportedOffice,omitempty" bson:"reportedOffice,omitempty"`
	Note           string `json:"note,omitempty" bson:"note,omitempty"`
	Timestamp      int64  `json:"timestamp" bson:"timestamp"`
}
