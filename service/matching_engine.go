package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"dpofinder/db"
	"dpofinder/domain"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Weights for keyword matches in the directory fields. An office-name
// hit is the strongest evidence; a state hit is usually too broad to
// mean much on its own.
const (
	weightOfficeName = 1.0
	weightDivision   = 0.7
	weightDistrict   = 0.5
	weightState      = 0.2

	// partial-ratio score (0-100) a keyword needs to count as a fuzzy
	// hit, and the discount applied to fuzzy hits
	fuzzyMatchThreshold = 80
	fuzzyPenalty        = 0.8

	// keyword found only in the concatenated search text
	searchTextBonus = 0.1
	// per-keyword bonus when more than one distinct keyword matched
	multiKeywordBonus = 0.2

	// rows scanned between context cancellation checks
	cancelCheckInterval = 256
)

// MatchingEngine resolves parsed addresses against the directory.
type MatchingEngine struct {
	Directory *db.Directory
}

type candidate struct {
	office  *domain.PostalOffice
	score   float64
	matched map[string]string
}

// ScoreOffice scores one office against the locality keywords. Each
// keyword is matched through the fields in weight order, exact before
// fuzzy; the first hit wins for that keyword. The returned map records
// which field matched each keyword.
func ScoreOffice(office *domain.PostalOffice, keywords []string) (float64, map[string]string) {
	score := 0.0
	matched := make(map[string]string)

	for _, keyword := range keywords {
		switch {
		case strings.Contains(office.SearchName, keyword):
			score += weightOfficeName
			matched[keyword] = "OfficeName"
		case strings.Contains(office.SearchDivision, keyword):
			score += weightDivision
			matched[keyword] = "Division"
		case strings.Contains(office.SearchDistrict, keyword):
			score += weightDistrict
			matched[keyword] = "District"
		case strings.Contains(office.SearchState, keyword):
			score += weightState
			matched[keyword] = "State"
		case fuzzyHit(keyword, office.SearchName):
			score += weightOfficeName * fuzzyPenalty
			matched[keyword] = "OfficeName (fuzzy)"
		case fuzzyHit(keyword, office.SearchDivision):
			score += weightDivision * fuzzyPenalty
			matched[keyword] = "Division (fuzzy)"
		case fuzzyHit(keyword, office.SearchDistrict):
			score += weightDistrict * fuzzyPenalty
			matched[keyword] = "District (fuzzy)"
		case strings.Contains(office.SearchText, keyword):
			score += searchTextBonus
			matched[keyword] = "OtherDetails"
		}
	}

	if len(matched) > 1 {
		score += float64(len(matched)) * multiKeywordBonus
	}

	return score, matched
}

func fuzzyHit(keyword, field string) bool {
	if field == "" {
		return false
	}
	return fuzzy.PartialRatio(keyword, field) >= fuzzyMatchThreshold
}

// Resolve maps a parsed address to a PIN code and delivery post
// office. A known PIN narrows the search to its offices; otherwise the
// whole directory is scored by locality keywords.
func (engine *MatchingEngine) Resolve(ctx context.Context, parsed domain.ParsedAddress) domain.Resolution {
	if engine.Directory == nil || engine.Directory.Len() == 0 {
		return domain.Resolution{
			Status:  domain.StatusError,
			Message: "Postal directory is not loaded.",
		}
	}

	if parsed.PINCode != "" {
		if offices := engine.Directory.ByPIN(parsed.PINCode); len(offices) > 0 {
			return engine.resolveWithinPIN(offices, parsed)
		}
		// unknown PIN, fall through to the locality-wide search
	}

	if len(parsed.LocalityKeywords) == 0 {
		return domain.Resolution{
			Status:  domain.StatusNotFound,
			Message: "Insufficient information: no PIN or locality keywords provided.",
		}
	}

	best := engine.bestLocalityCandidate(ctx, parsed.LocalityKeywords)
	if err := ctx.Err(); err != nil {
		return domain.Resolution{
			Status:  domain.StatusError,
			Message: "Resolution canceled: " + err.Error(),
		}
	}
	if best == nil {
		return domain.Resolution{
			Status:  domain.StatusNotFound,
			Message: "Could not determine a post office from the locality keywords.",
		}
	}

	status := domain.StatusSuccessLocality
	if !best.office.Delivery {
		status = domain.StatusSuccessLocalityNonDPO
	}

	return domain.Resolution{
		Status:          status,
		PINCode:         best.office.PINCode,
		OfficeName:      best.office.Name,
		Delivery:        best.office.Delivery,
		Score:           round2(best.score),
		MatchedKeywords: best.matched,
		Message:         fmt.Sprintf("Match found by locality. Keywords matched: %s.", matchedKeywordsString(best.matched)),
	}
}

// Validate cross-checks a user-supplied PIN against the PIN predicted
// from the locality keywords alone and flags disagreement.
func (engine *MatchingEngine) Validate(ctx context.Context, parsed domain.ParsedAddress) domain.Resolution {
	if parsed.PINCode == "" || len(parsed.LocalityKeywords) == 0 {
		return engine.Resolve(ctx, parsed)
	}

	predicted := engine.Resolve(ctx, domain.ParsedAddress{LocalityKeywords: parsed.LocalityKeywords})
	if !predicted.Found() {
		return engine.Resolve(ctx, parsed)
	}

	if predicted.PINCode != parsed.PINCode {
		predicted.Status = domain.StatusPINMismatch
		predicted.PINMismatch = true
		predicted.InputPIN = parsed.PINCode
		predicted.Message = fmt.Sprintf("Input PIN %s disagrees with PIN %s predicted from the locality.",
			parsed.PINCode, predicted.PINCode)
		return predicted
	}

	resolution := engine.Resolve(ctx, parsed)
	resolution.InputPIN = parsed.PINCode
	return resolution
}

// resolveWithinPIN picks the best office among those registered under
// a known PIN, preferring delivery-flagged offices.
func (engine *MatchingEngine) resolveWithinPIN(offices []*domain.PostalOffice, parsed domain.ParsedAddress) domain.Resolution {
	var dpos []*domain.PostalOffice
	for _, office := range offices {
		if office.Delivery {
			dpos = append(dpos, office)
		}
	}

	if len(dpos) == 0 {
		first := offices[0]
		return domain.Resolution{
			Status:     domain.StatusPartialMatchPINNoDPO,
			PINCode:    first.PINCode,
			OfficeName: first.Name,
			Message: fmt.Sprintf("PIN %s is valid, but no office in it is flagged for delivery. Suggested the first office.",
				parsed.PINCode),
		}
	}

	if len(parsed.LocalityKeywords) == 0 {
		first := dpos[0]
		return domain.Resolution{
			Status:     domain.StatusSuccessPINOnly,
			PINCode:    first.PINCode,
			OfficeName: first.Name,
			Delivery:   true,
			Message:    fmt.Sprintf("Found delivery office for PIN %s. Locality not specified.", parsed.PINCode),
		}
	}

	// Strictly-greater comparison keeps the earliest of equally scored
	// offices, so results are stable in CSV order.
	var best *candidate
	for _, office := range dpos {
		score, matchedFields := ScoreOffice(office, parsed.LocalityKeywords)
		if score <= 0 {
			continue
		}
		if best == nil || score > best.score {
			best = &candidate{office: office, score: score, matched: matchedFields}
		}
	}

	if best != nil {
		return domain.Resolution{
			Status:          domain.StatusSuccess,
			PINCode:         best.office.PINCode,
			OfficeName:      best.office.Name,
			Delivery:        true,
			Score:           round2(best.score),
			MatchedKeywords: best.matched,
			Message: fmt.Sprintf("Match found for PIN %s. Keywords matched: %s.",
				parsed.PINCode, matchedKeywordsString(best.matched)),
		}
	}

	first := dpos[0]
	return domain.Resolution{
		Status:     domain.StatusPartialMatchPIN,
		PINCode:    first.PINCode,
		OfficeName: first.Name,
		Delivery:   true,
		Message: fmt.Sprintf("PIN %s has delivery offices, but the locality keywords did not match any. Suggested the first one.",
			parsed.PINCode),
	}
}

// bestLocalityCandidate scans the state shards concurrently and keeps
// the best-scoring office overall.
func (engine *MatchingEngine) bestLocalityCandidate(ctx context.Context, keywords []string) *candidate {
	shards := engine.Directory.Shards()
	results := make(chan *candidate, len(shards))

	var wg sync.WaitGroup
	for _, shard := range shards {
		wg.Add(1)
		go func(offices []*domain.PostalOffice) {
			defer wg.Done()

			var best *candidate
			for i, office := range offices {
				if i%cancelCheckInterval == 0 {
					select {
					case <-ctx.Done():
						return
					default:
					}
				}

				score, matchedFields := ScoreOffice(office, keywords)
				if score <= 0 {
					continue
				}
				cand := &candidate{office: office, score: score, matched: matchedFields}
				if best == nil || betterCandidate(cand, best) {
					best = cand
				}
			}
			if best != nil {
				results <- best
			}
		}(shard)
	}

	wg.Wait()
	close(results)

	var best *candidate
	for cand := range results {
		if best == nil || betterCandidate(cand, best) {
			best = cand
		}
	}
	return best
}

// betterCandidate orders delivery offices first, then by score, then
// by PIN and name so concurrent scans stay deterministic.
func betterCandidate(a, b *candidate) bool {
	if a.office.Delivery != b.office.Delivery {
		return a.office.Delivery
	}
	if a.score != b.score {
		return a.score > b.score
	}
	if a.office.PINCode != b.office.PINCode {
		return a.office.PINCode < b.office.PINCode
	}
	return a.office.SearchName < b.office.SearchName
}

func matchedKeywordsString(matched map[string]string) string {
	keywords := make([]string, 0, len(matched))
	for keyword := range matched {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)

	parts := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		parts = append(parts, fmt.Sprintf("'%s' (%s)", keyword, matched[keyword]))
	}
	return strings.Join(parts, ", ")
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
