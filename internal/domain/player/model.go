package player

import (
	"fmt"
	"strings"
	"time"
)

// Player is a roster entry of one team, keyed by the source's player id.
type Player struct {
	ID             int64
	TeamID         int64
	FirstName      string
	LastName       string
	FullName       string
	JerseyNumber   *int
	Position       string
	PhotoURL       string
	SourcePlayerID string
	DateOfBirth    *time.Time
	Height         string
	Weight         *int
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DisplayName falls back to first and last name when the source gave no full name.
func (p Player) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if p.TeamID <= 0 {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.SourcePlayerID) == "" {
		return fmt.Errorf("player source id is required")
	}

	return nil
}
