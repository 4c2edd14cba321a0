package models

import "time"

// Endpoint is one RPC endpoint row. SpeedClass groups endpoints into the sets
// consumed by execution strategies (standard, premium, lightning).
type Endpoint struct {
	ID         int64
	ChainID    string
	URL        string
	Provider   string
	SpeedClass string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
