package service

import (
	"regexp"
	"strings"

	"dpofinder/domain"
	"dpofinder/utils"
)

// commonAddressTerms are generic address words that carry no locality
// signal: suffixes, postal abbreviations, administrative units and
// filler. Tailored to Indian addresses.
var commonAddressTerms = map[string]struct{}{
	"road": {}, "rd": {}, "street": {}, "st": {}, "marg": {}, "path": {}, "lane": {}, "gali": {},
	"nagar": {}, "colony": {}, "layout": {}, "extension": {}, "extn": {},
	"sector": {}, "sec": {}, "phase": {}, "ph": {},
	"apartment": {}, "apartments": {}, "apt": {}, "appts": {},
	"building": {}, "bldg": {}, "complex": {},
	"house": {}, "no": {}, "number": {}, "num": {}, "hno": {},
	"near": {}, "opposite": {}, "opp": {}, "behind": {}, "beside": {}, "adj": {}, "adjacent": {},
	"main": {}, "cross": {},
	"area": {}, "zone": {}, "block": {}, "chowk": {}, "circle": {},
	"post": {}, "office": {}, "po": {}, "so": {}, "bo": {}, "ho": {}, "gpo": {},
	"tehsil": {}, "taluk": {}, "mandal": {},
	"floor": {}, "flr": {}, "ground": {}, "grnd": {},
	"and": {}, "or": {}, "the": {}, "of": {}, "in": {}, "at": {}, "on": {},
	"new": {}, "old": {}, "north": {}, "south": {}, "east": {}, "west": {}, "central": {},
}

var (
	pinPattern   = regexp.MustCompile(`\b\d{6}\b`)
	punctPattern = regexp.MustCompile(`[^\w\s-]`)
	splitPattern = regexp.MustCompile(`[,\s\-/()]+`)
)

// ParseAddress extracts a candidate PIN code and locality keywords
// from a free-text address. Empty or unusable input yields a zero
// ParsedAddress, never an error.
func ParseAddress(raw string) domain.ParsedAddress {
	var parsed domain.ParsedAddress
	if strings.TrimSpace(raw) == "" {
		return parsed
	}

	text := utils.FoldASCII(strings.ToLower(raw))

	// A PIN is a standalone 6-digit token; 5- and 7-digit runs are
	// something else, and Indian PINs never start with 0.
	for _, token := range pinPattern.FindAllString(text, -1) {
		if token[0] != '0' {
			parsed.PINCode = token
			break
		}
	}
	// Either way, 6-digit tokens are not locality evidence.
	text = pinPattern.ReplaceAllString(text, " ")

	// Keep words, spaces and hyphens; split on the usual delimiters.
	cleaned := punctPattern.ReplaceAllString(text, "")

	seen := make(map[string]bool)
	for _, token := range splitPattern.Split(cleaned, -1) {
		keyword := strings.TrimSpace(token)
		if len(keyword) <= 2 || seen[keyword] {
			continue
		}
		if _, stop := commonAddressTerms[keyword]; stop {
			continue
		}
		seen[keyword] = true
		parsed.LocalityKeywords = append(parsed.LocalityKeywords, keyword)
	}

	return parsed
}
