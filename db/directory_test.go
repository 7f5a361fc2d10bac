package db

import (
	"os"
	"path/filepath"
	"testing"

	"dpofinder/domain"

	"gotest.tools/v3/assert"
)

func writeDirectoryCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "postal_data.csv")
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const directoryCSV = `CircleName,RegionName,DivisionName,OfficeName,Pincode,OfficeType,Delivery,District,StateName,Latitude,Longitude
Delhi Circle,Delhi Region,New Delhi Central Division,Connaught Place H.O,110001,HO,Delivery,New Delhi,DELHI,28.6315,77.2167
Delhi Circle,Delhi Region,New Delhi Central Division,Parliament Street H.O,110001,HO,Non-Delivery,New Delhi,DELHI,28.6179,77.2122
Karnataka Circle,Bengaluru HQ Region,Bangalore East Division,Indiranagar S.O,560038,SO,Delivery,Bangalore Urban,KARNATAKA,12.9784,77.6408
`

func TestLoadDirectory(t *testing.T) {
	directory, err := LoadDirectory(writeDirectoryCSV(t, directoryCSV))
	assert.NilError(t, err)
	assert.Equal(t, directory.Len(), 3)

	offices := directory.ByPIN("110001")
	assert.Equal(t, len(offices), 2)
	// CSV order is preserved within a PIN
	assert.Equal(t, offices[0].Name, "Connaught Place H.O")
	assert.Assert(t, offices[0].Delivery)
	assert.Equal(t, offices[1].Name, "Parliament Street H.O")
	assert.Assert(t, !offices[1].Delivery)

	assert.Equal(t, offices[0].OfficeType, domain.HeadOffice)
	assert.Equal(t, offices[0].SearchName, "connaught place h.o")
	assert.Equal(t, offices[0].SearchText, "connaught place h.o new delhi central division new delhi delhi")

	assert.Equal(t, len(directory.ByPIN("999999")), 0)
	// one shard per state
	assert.Equal(t, len(directory.Shards()), 2)
}

func TestLoadDirectoryHeaderAliases(t *testing.T) {
	csv := `PINCode,Office Name,Delivery,District,State
110001,Connaught Place H.O,Delivery,New Delhi,DELHI
`
	directory, err := LoadDirectory(writeDirectoryCSV(t, csv))
	assert.NilError(t, err)
	assert.Equal(t, directory.Len(), 1)

	office := directory.ByPIN("110001")[0]
	assert.Equal(t, office.Name, "Connaught Place H.O")
	assert.Equal(t, office.State, "DELHI")
	assert.Assert(t, office.Delivery)
	// missing optional columns stay empty
	assert.Equal(t, office.Division, "")
}

func TestLoadDirectoryDropsRowsWithoutPIN(t *testing.T) {
	csv := `Pincode,OfficeName,Delivery,StateName
110001,Connaught Place H.O,Delivery,DELHI
,Ghost Office,Delivery,DELHI
`
	directory, err := LoadDirectory(writeDirectoryCSV(t, csv))
	assert.NilError(t, err)
	assert.Equal(t, directory.Len(), 1)
}

func TestLoadDirectoryEmpty(t *testing.T) {
	_, err := LoadDirectory(writeDirectoryCSV(t, "Pincode,OfficeName\n"))
	assert.ErrorContains(t, err, "no usable rows")

	_, err = LoadDirectory(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "failed to open")
}

func TestQuickSearch(t *testing.T) {
	directory, err := LoadDirectory(writeDirectoryCSV(t, directoryCSV))
	assert.NilError(t, err)

	t.Run("pin matches come first", func(t *testing.T) {
		parsed := domain.ParsedAddress{PINCode: "110001", LocalityKeywords: []string{"indiranagar"}}
		suggestions := directory.QuickSearch(parsed, 5)
		assert.Equal(t, len(suggestions), 3)
		assert.Equal(t, suggestions[0].OfficeName, "Connaught Place H.O")
		assert.Equal(t, suggestions[1].OfficeName, "Parliament Street H.O")
		assert.Equal(t, suggestions[2].OfficeName, "Indiranagar S.O")
	})

	t.Run("keyword containment", func(t *testing.T) {
		parsed := domain.ParsedAddress{LocalityKeywords: []string{"indiranagar"}}
		suggestions := directory.QuickSearch(parsed, 5)
		assert.Equal(t, len(suggestions), 1)
		assert.Equal(t, suggestions[0].PINCode, "560038")
	})

	t.Run("limit caps results", func(t *testing.T) {
		parsed := domain.ParsedAddress{PINCode: "110001"}
		suggestions := directory.QuickSearch(parsed, 1)
		assert.Equal(t, len(suggestions), 1)
	})

	t.Run("no duplicates across pin and keywords", func(t *testing.T) {
		parsed := domain.ParsedAddress{PINCode: "110001", LocalityKeywords: []string{"connaught"}}
		suggestions := directory.QuickSearch(parsed, 5)
		assert.Equal(t, len(suggestions), 2)
	})

	t.Run("zero limit", func(t *testing.T) {
		parsed := domain.ParsedAddress{PINCode: "110001"}
		assert.Equal(t, len(directory.QuickSearch(parsed, 0)), 0)
	})
}
