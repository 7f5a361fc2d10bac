package domain

import (
	"strings"

	"dpofinder/utils"
)

// OfficeType is the India Post office category.
type OfficeType string

// OfficeType enum values
const (
	BranchOffice  OfficeType = "BO"
	SubOffice     OfficeType = "SO"
	HeadOffice    OfficeType = "HO"
	GeneralPostal OfficeType = "GPO"
)

// PostalOffice is one row of the India Post office directory.
type PostalOffice struct {
	PINCode    string     `json:"pincode"`
	Name       string     `json:"officeName"`
	OfficeType OfficeType `json:"officeType,omitempty"`
	Delivery   bool       `json:"delivery"`
	Division   string     `json:"division,omitempty"`
	Region     string     `json:"region,omitempty"`
	Circle     string     `json:"circle,omitempty"`
	District   string     `json:"district,omitempty"`
	State      string     `json:"state,omitempty"`
	Latitude   string     `json:"latitude,omitempty"`
	Longitude  string     `json:"longitude,omitempty"`

	// helper fields

	// lowercase, accent-folded search text, precomputed at load time
	SearchName     string `json:"-"`
	SearchDivision string `json:"-"`
	SearchDistrict string `json:"-"`
	SearchState    string `json:"-"`
	SearchText     string `json:"-"`
}

// BuildSearchFields precomputes the lowercase search fields and the
// concatenated searchable text. Name keeps its CSV casing for display;
// matching always goes through the Search* fields.
func (o *PostalOffice) BuildSearchFields() {
	o.SearchName = utils.FoldASCII(strings.ToLower(o.Name))
	o.SearchDivision = utils.FoldASCII(strings.ToLower(o.Division))
	o.SearchDistrict = utils.FoldASCII(strings.ToLower(o.District))
	o.SearchState = utils.FoldASCII(strings.ToLower(o.State))

	o.SearchText = strings.TrimSpace(strings.Join([]string{
		o.SearchName, o.SearchDivision, o.SearchDistrict, o.SearchState,
	}, " "))
}
