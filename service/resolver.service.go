package service

import (
	"context"
	"time"

	"dpofinder/db"
	"dpofinder/domain"
	"dpofinder/metric"
	"dpofinder/utils"

	log "github.com/sirupsen/logrus"
)

// ResolverServiceImpl wires the parser, the matching engine and the
// caches into the lookup operations the controller exposes.
type ResolverServiceImpl struct {
	Directory *db.Directory
	Engine    *MatchingEngine
}

func NewResolverService(directory *db.Directory) ResolverServiceImpl {
	return ResolverServiceImpl{
		Directory: directory,
		Engine:    &MatchingEngine{Directory: directory},
	}
}

// ResolveAddress parses a free-text address and resolves it to a PIN
// code and delivery post office, going through the resolution cache.
func (service ResolverServiceImpl) ResolveAddress(ctx context.Context, raw string) domain.Resolution {
	parsed := ParseAddress(raw)
	if parsed.IsEmpty() {
		return domain.Resolution{
			Status:  domain.StatusNotFound,
			Message: "Insufficient information: no PIN or locality keywords provided.",
		}
	}

	if cached, err := db.ResolutionCacheInstance.GetCachedResolution(ctx, parsed); err == nil && cached != nil {
		metric.GetInstance().RecordCacheHit()
		return *cached
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(utils.Cfg.Server.ResolveTimeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	resolution := service.Engine.Resolve(timeoutCtx, parsed)
	metric.GetInstance().RecordResolution(string(resolution.Status), time.Since(start))

	if resolution.Found() {
		if err := db.ResolutionCacheInstance.CacheResolution(ctx, parsed, resolution); err != nil {
			log.WithError(err).Debug("Resolution not cached")
		}
	}

	return resolution
}

// ValidatePIN cross-checks the PIN in the address against the locality
// prediction. The user-supplied PIN is recorded on the result whether
// or not the two agree; disagreement is additionally flagged.
func (service ResolverServiceImpl) ValidatePIN(ctx context.Context, raw string) domain.Resolution {
	parsed := ParseAddress(raw)
	if parsed.IsEmpty() {
		return domain.Resolution{
			Status:  domain.StatusNotFound,
			Message: "Insufficient information: no PIN or locality keywords provided.",
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, time.Duration(utils.Cfg.Server.ResolveTimeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	resolution := service.Engine.Validate(timeoutCtx, parsed)
	metric.GetInstance().RecordResolution(string(resolution.Status), time.Since(start))

	return resolution
}

// Suggest returns quick typeahead suggestions for a partial address,
// going through the suggestion cache.
func (service ResolverServiceImpl) Suggest(ctx context.Context, raw string, limit int) []domain.Suggestion {
	parsed := ParseAddress(raw)
	if parsed.IsEmpty() {
		return nil
	}

	if cached, err := db.SuggestionCacheInstance.GetCachedSuggestions(ctx, parsed, limit); err == nil && cached != nil {
		metric.GetInstance().RecordCacheHit()
		return cached
	}

	suggestions := service.Directory.QuickSearch(parsed, limit)

	if err := db.SuggestionCacheInstance.CacheSuggestions(ctx, parsed, limit, suggestions); err != nil {
		log.WithError(err).Debug("Suggestions not cached")
	}

	return suggestions
}

// OfficesByPIN lists the offices registered under a PIN.
func (service ResolverServiceImpl) OfficesByPIN(pin string) []*domain.PostalOffice {
	return service.Directory.ByPIN(pin)
}
