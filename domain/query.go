package domain

import (
	"strconv"

	"dpofinder/utils"
)

// Query is one resolved address lookup as persisted for sharing.
type Query struct {
	Address    string        `json:"address"`
	Parsed     ParsedAddress `json:"parsed"`
	Resolution Resolution    `json:"resolution"`
	Timestamp  int64         `json:"timestamp"`
	SessionID  string        `json:"sessionId,omitempty"`

	// helper fields

	// hash over the raw address and timestamp, used as the share id
	HelperQueryHash string `json:"queryHash"`
}

func (q *Query) GenerateQueryHash() {
	stringToHash := q.Address + "|" + q.SessionID + "|" + strconv.FormatInt(q.Timestamp, 10)
	q.HelperQueryHash = utils.HashURLEncoded([]byte(stringToHash))
}
