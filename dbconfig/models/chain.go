package models

import (
	"time"
)

// Chain is one chain row of the runtime inventory.
type Chain struct {
	ID        int64
	ChainID   string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
