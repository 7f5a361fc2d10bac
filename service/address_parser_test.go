package service

import (
	"testing"

	"dpofinder/domain"

	"gotest.tools/v3/assert"
)

func TestParseAddress(t *testing.T) {
	testCases := []struct {
		name     string
		address  string
		pin      string
		keywords []string
	}{
		{
			name:     "pin and locality",
			address:  "Connaught Place, New Delhi 110001",
			pin:      "110001",
			keywords: []string{"connaught", "place", "delhi"},
		},
		{
			name:     "stop words removed",
			address:  "MG Road, Bangalore, Main Area",
			keywords: []string{"bangalore"},
		},
		{
			name:     "house number kept when long enough",
			address:  "123 Main St, Indiranagar Stage 2, 560038",
			pin:      "560038",
			keywords: []string{"123", "indiranagar", "stage"},
		},
		{
			name:     "five digits are not a pin",
			address:  "Invalid PIN 12345",
			keywords: []string{"invalid", "pin", "12345"},
		},
		{
			name:     "seven digits are not a pin",
			address:  "Somewhere 1234567",
			keywords: []string{"somewhere", "1234567"},
		},
		{
			name:     "leading zero is not a pin",
			address:  "Connaught 012345",
			keywords: []string{"connaught"},
		},
		{
			name:     "punctuation and abbreviations",
			address:  "H.No 45, 3rd Cross, Shanti Nagar Colony, Hyderabad 500028",
			pin:      "500028",
			keywords: []string{"3rd", "shanti", "hyderabad"},
		},
		{
			name:     "hyphenated locality splits",
			address:  "Anna-Nagar anna nagar",
			keywords: []string{"anna"},
		},
		{
			name:     "sector address",
			address:  "Sector 15, Part II, Gurgaon",
			keywords: []string{"part", "gurgaon"},
		},
		{
			name:     "accents fold to ascii",
			address:  "Pondichéry 605001",
			pin:      "605001",
			keywords: []string{"pondichery"},
		},
		{
			name:    "pin only",
			address: "560038",
			pin:     "560038",
		},
		{
			name:    "blank input",
			address: "   ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseAddress(tc.address)
			assert.Equal(t, parsed.PINCode, tc.pin)
			assert.DeepEqual(t, parsed.LocalityKeywords, tc.keywords)
		})
	}
}

func TestParseAddressEmptyIsEmpty(t *testing.T) {
	assert.Assert(t, ParseAddress("").IsEmpty())
	assert.Assert(t, ParseAddress(" , - ").IsEmpty())
	assert.Assert(t, !ParseAddress("Indiranagar").IsEmpty())
}

func TestParsedAddressCacheKeyIgnoresKeywordOrder(t *testing.T) {
	a := domain.ParsedAddress{PINCode: "560038", LocalityKeywords: []string{"indiranagar", "bangalore"}}
	b := domain.ParsedAddress{PINCode: "560038", LocalityKeywords: []string{"bangalore", "indiranagar"}}
	c := domain.ParsedAddress{PINCode: "560001", LocalityKeywords: []string{"bangalore", "indiranagar"}}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.Assert(t, a.CacheKey() != c.CacheKey())
}
