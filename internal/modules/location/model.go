package location

// Location is a reverse-geocoded address.
type Location struct {
	DisplayName string  `json:"displayName"`
	Road        string  `json:"road,omitempty"`
	City        string  `json:"city,omitempty"`
	State       string  `json:"state,omitempty"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"countryCode,omitempty"`
	Postcode    string  `json:"postcode,omitempty"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}
