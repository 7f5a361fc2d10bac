package utils

import (
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCSVToRecords(t *testing.T) {
	input := ` Pincode , OfficeName ,Delivery
110001, Connaught Place H.O ,Delivery
011111,Leading Zero B.O,Non-Delivery
`
	records, err := CSVToRecords(strings.NewReader(input))
	assert.NilError(t, err)
	assert.Equal(t, len(records), 2)

	// headers and values are trimmed
	assert.Equal(t, records[0]["Pincode"], "110001")
	assert.Equal(t, records[0]["OfficeName"], "Connaught Place H.O")

	// values stay strings, leading zeros intact
	assert.Equal(t, records[1]["Pincode"], "011111")
}

func TestCSVToRecordsRaggedRows(t *testing.T) {
	input := `Pincode,OfficeName,Delivery
110001,Connaught Place H.O
560038,Indiranagar S.O,Delivery,EXTRA
`
	records, err := CSVToRecords(strings.NewReader(input))
	assert.NilError(t, err)
	assert.Equal(t, len(records), 2)

	// short row leaves the missing column unset
	_, ok := records[0]["Delivery"]
	assert.Assert(t, !ok)
	// long row drops the extra cell
	assert.Equal(t, records[1]["Delivery"], "Delivery")
}

func TestCSVToRecordsNoHeader(t *testing.T) {
	_, err := CSVToRecords(strings.NewReader(""))
	assert.ErrorContains(t, err, "failed to read CSV headers")
}

func TestFoldASCII(t *testing.T) {
	assert.Equal(t, FoldASCII("pondichéry"), "pondichery")
	assert.Equal(t, FoldASCII("plain ascii 123"), "plain ascii 123")
	assert.Equal(t, FoldASCII(""), "")
}
