package domain

import "time"

// SearchResult aggregates one LayerResult per layer plus a cross-layer
// synthesis. Exists only for the duration of one request.
type SearchResult struct {
	Query     string                `json:"query"`
	Results   map[Layer]LayerResult `json:"results"`
	Synthesis string                `json:"synthesis"`
	Timestamp time.Time             `json:"search_timestamp"`
}

// HistoryEntry is one record in the search-history log.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Layer     string    `json:"layer,omitempty"` // empty for a full deep search
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
