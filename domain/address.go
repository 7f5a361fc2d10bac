package domain

import (
	"sort"
	"strings"

	"dpofinder/utils"
)

// ParsedAddress is the structured form of a free-text address query:
// an optional 6-digit PIN code and the locality keywords left over
// after stop-word removal.
type ParsedAddress struct {
	PINCode          string   `json:"pincode,omitempty"`
	LocalityKeywords []string `json:"localityKeywords,omitempty"`
}

// IsEmpty reports whether parsing produced no usable information.
func (p ParsedAddress) IsEmpty() bool {
	return p.PINCode == "" && len(p.LocalityKeywords) == 0
}

// CacheKey generates a cache key from the parsed address. Keywords are
// sorted first so that "indiranagar bangalore" and "bangalore,
// indiranagar" share a cache entry.
func (p ParsedAddress) CacheKey() string {
	keywords := make([]string, len(p.LocalityKeywords))
	copy(keywords, p.LocalityKeywords)
	sort.Strings(keywords)

	stringToHash := p.PINCode + "|" + strings.Join(keywords, " ")
	return utils.HashURLEncoded([]byte(stringToHash))
}
