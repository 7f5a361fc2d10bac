package db

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"dpofinder/domain"
	"dpofinder/utils"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// header aliases seen across India Post directory dumps
var columnAliases = map[string][]string{
	"pincode":  {"Pincode", "PINCode", "PinCode", "pincode"},
	"office":   {"OfficeName", "officename", "Office Name"},
	"type":     {"OfficeType", "officetype"},
	"delivery": {"Delivery", "DeliveryStatus", "delivery"},
	"division": {"DivisionName", "Divisionname", "division"},
	"region":   {"RegionName", "regionname"},
	"circle":   {"CircleName", "circlename"},
	"district": {"District", "Districtname", "district"},
	"state":    {"StateName", "State", "statename"},
	"lat":      {"Latitude", "latitude"},
	"lon":      {"Longitude", "longitude"},
}

// Directory is the in-memory India Post office directory. Offices are
// indexed by PIN and sharded by state so the matching engine can scan
// shards concurrently. The directory is read-only after Load.
type Directory struct {
	offices []*domain.PostalOffice
	byPIN   map[string][]*domain.PostalOffice
	shards  [][]*domain.PostalOffice
}

// LoadDirectory reads the office directory CSV, normalizes every row
// and builds the PIN index and state shards.
func LoadDirectory(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open postal data: %w", err)
	}
	defer f.Close()

	rows, err := utils.CSVToRecords(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postal data: %w", err)
	}

	dir := &Directory{
		byPIN: make(map[string][]*domain.PostalOffice),
	}

	dropped := 0
	for _, row := range rows {
		office := rowToOffice(row)
		if office.PINCode == "" {
			dropped++
			continue
		}
		dir.offices = append(dir.offices, office)
		dir.byPIN[office.PINCode] = append(dir.byPIN[office.PINCode], office)
	}

	if len(dir.offices) == 0 {
		return nil, fmt.Errorf("postal data %s contains no usable rows", path)
	}
	if dropped > 0 {
		log.Warnf("Dropped %d directory rows without a PIN code", dropped)
	}

	if err := dir.buildShards(); err != nil {
		return nil, err
	}

	log.Infof("Loaded %d post offices in %d PIN codes (%d state shards)",
		len(dir.offices), len(dir.byPIN), len(dir.shards))
	return dir, nil
}

func rowToOffice(row map[string]string) *domain.PostalOffice {
	return &domain.PostalOffice{
		PINCode:    pick(row, "pincode"),
		Name:       pick(row, "office"),
		OfficeType: domain.OfficeType(strings.ToUpper(pick(row, "type"))),
		Delivery:   strings.EqualFold(pick(row, "delivery"), "delivery"),
		Division:   pick(row, "division"),
		Region:     pick(row, "region"),
		Circle:     pick(row, "circle"),
		District:   pick(row, "district"),
		State:      pick(row, "state"),
		Latitude:   pick(row, "lat"),
		Longitude:  pick(row, "lon"),
	}
}

func pick(row map[string]string, field string) string {
	for _, alias := range columnAliases[field] {
		if v, ok := row[alias]; ok && v != "" {
			return v
		}
	}
	return ""
}

// buildShards groups offices by state and precomputes the search
// fields of each shard in parallel.
func (d *Directory) buildShards() error {
	byState := make(map[string][]*domain.PostalOffice)
	for _, office := range d.offices {
		state := strings.ToLower(office.State)
		byState[state] = append(byState[state], office)
	}

	// deterministic shard order
	states := make([]string, 0, len(byState))
	for state := range byState {
		states = append(states, state)
	}
	sort.Strings(states)

	d.shards = make([][]*domain.PostalOffice, len(states))

	var g errgroup.Group
	for i, state := range states {
		shard := byState[state]
		d.shards[i] = shard
		g.Go(func() error {
			for _, office := range shard {
				office.BuildSearchFields()
			}
			return nil
		})
	}
	return g.Wait()
}

// ByPIN returns the offices registered under a PIN in CSV order.
func (d *Directory) ByPIN(pin string) []*domain.PostalOffice {
	return d.byPIN[pin]
}

// Shards returns the state shards for concurrent scanning. Callers
// must not mutate the returned slices.
func (d *Directory) Shards() [][]*domain.PostalOffice {
	return d.shards
}

// Len returns the number of offices in the directory.
func (d *Directory) Len() int {
	return len(d.offices)
}

// QuickSearch is the cheap typeahead lookup: offices in the parsed PIN
// first, then offices whose searchable text contains any keyword.
// Results are deduplicated by search name and capped at limit.
func (d *Directory) QuickSearch(parsed domain.ParsedAddress, limit int) []domain.Suggestion {
	if limit <= 0 {
		return nil
	}

	seen := make(map[string]bool)
	suggestions := make([]domain.Suggestion, 0, limit)

	add := func(office *domain.PostalOffice) bool {
		if seen[office.SearchName] {
			return len(suggestions) < limit
		}
		seen[office.SearchName] = true
		suggestions = append(suggestions, domain.Suggestion{
			OfficeName: office.Name,
			PINCode:    office.PINCode,
			District:   office.District,
			State:      office.State,
			Delivery:   office.Delivery,
		})
		return len(suggestions) < limit
	}

	if parsed.PINCode != "" {
		for _, office := range d.byPIN[parsed.PINCode] {
			if !add(office) {
				return suggestions
			}
		}
	}

	for _, shard := range d.shards {
		for _, office := range shard {
			for _, keyword := range parsed.LocalityKeywords {
				if strings.Contains(office.SearchText, keyword) {
					if !add(office) {
						return suggestions
					}
					break
				}
			}
		}
	}

	return suggestions
}
