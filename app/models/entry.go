package models

// Entry is one row of the municipality gazetteer.
//
// Similarity and ZipCollision are per-query annotations; entries held by the
// store always carry their zero values.
type Entry struct {
	MunicipalityCode  string  `json:"gemeindeschluessel"` // 8 digits, leading zeros significant
	DistrictCode      string  `json:"kreisschluessel"`    // MunicipalityCode[0:5]
	DistrictFree      bool    `json:"kreisfrei"`          // MunicipalityCode[5:8] == "000"
	PostalCode        string  `json:"plz"`
	PlaceName         string  `json:"ort"`
	Latitude          string  `json:"lat"`
	Longitude         string  `json:"lon"`
	DistrictName      string  `json:"kreis,omitempty"`
	DistrictLatitude  string  `json:"kreis_lat"`
	DistrictLongitude string  `json:"kreis_lon"`
	StateName         string  `json:"bundesland"`
	Deprecated        bool    `json:"deprecated"`
	Population        *string `json:"einwohner"`
	Similarity        uint8   `json:"similarity"`
	ZipCollision      bool    `json:"zip_collision"`
	PrimaryZip        bool    `json:"primary_zip"`

	// PlaceKey is the lowercased place name used for matching.
	PlaceKey string `json:"-"`
}

// MunicipalityCodeLen is the length of an official municipality code.
const MunicipalityCodeLen = 8

// DistrictCodeLen is the length of a district code.
const DistrictCodeLen = 5

// StateID returns the two digit state code.
func (e Entry) StateID() string {
	return e.DistrictCode[0:2]
}

// WithSimilarity returns a copy of the entry annotated with a similarity score.
func (e Entry) WithSimilarity(similarity uint8) Entry {
	e.Similarity = similarity
	return e
}

// WithZipCollision returns a copy of the entry annotated with the zip collision flag.
func (e Entry) WithZipCollision(zipCollision bool) Entry {
	e.ZipCollision = zipCollision
	return e
}

// HasPopulation reports whether the source row carried a population value.
func (e Entry) HasPopulation() bool {
	return e.Population != nil
}
