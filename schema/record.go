// Package schema has configs, models and shared types for all parts of nowcast.
package schema

// EstimateRecord represents one flattened (entity, time, indicator) observation
// from the indicator API. National records leave Region empty; subnational
// records carry a GADM1 region code.
type EstimateRecord struct {
	Country        string     `json:"country"`                   // ISO3 country code
	Region         string     `json:"region,omitempty"`          // GADM1 code, empty at national level
	Period         string     `json:"period"`                    // Time label, e.g. "2024-01"
	Indicator      string     `json:"indicator"`                 // Indicator name, e.g. "internet_fm_ratio"
	Predicted      *float64   `json:"predicted"`                 // Model estimate, nil when absent upstream
	PredictedError *float64   `json:"predicted_error,omitempty"` // Uncertainty, nil when absent upstream
	Level          AdminLevel `json:"level"`                     // Granularity the record came from
}

// AudienceEstimate represents a demographic audience count from the
// social-media marketing API.
type AudienceEstimate struct {
	Country  string `json:"country"`   // ISO3 country code
	AgeMin   int    `json:"age_min"`   // Lower age bound, inclusive
	AgeMax   int    `json:"age_max"`   // Upper age bound, inclusive (0 = open)
	Genders  string `json:"genders"`   // "all", "female" or "male"
	MAU      int64  `json:"mau"`       // Monthly active users estimate
	MAULower int64  `json:"mau_lower"` // Lower bound reported by the API
	MAUUpper int64  `json:"mau_upper"` // Upper bound reported by the API
}

// Partition is a labeled pair of disjoint row-index sets over a dataset.
// Train and Validation never overlap; their union covers the rows assigned
// to the partition's fold or group.
type Partition struct {
	Label      string // Fold index ("fold-1") or held-out group value ("CIV")
	Train      []int  // Row indices used for fitting
	Validation []int  // Row indices held out for scoring
}
