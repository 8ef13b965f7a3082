package domain

// DestinationRecord is a catalog row as stored or fetched upstream. Numeric
// cost fields are optional here; the budget package fills defaults on load.
type DestinationRecord struct {
	ID               int64      `json:"id,omitempty"`
	Name             string     `json:"name"`
	Country          string     `json:"country"`
	CostIndex        *float64   `json:"costIndex,omitempty"`
	Popularity       *float64   `json:"popularity,omitempty"`
	AverageDailyCost *float64   `json:"averageDailyCost,omitempty"`
	Currency         string     `json:"currency"`
	Region           string     `json:"region"`
	Activities       []Activity `json:"activities,omitempty"`
	RawJSON          []byte     `json:"-"` // full upstream payload
}

type Activity struct {
	DestinationID int64   `json:"-"`
	SourceID      *string `json:"sourceId,omitempty"`
	Name          string  `json:"name,omitempty"`
	Category      string  `json:"category,omitempty"`
	Cost          float64 `json:"cost"`
	Rating        float64 `json:"rating"`
}
