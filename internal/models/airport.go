package models

// AirportSummary is the airport projection embedded in route responses.
type AirportSummary struct {
	ID       int64  `json:"id"`
	IATACode string `json:"iata_code"`
	ICAOCode string `json:"icao_code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
}
