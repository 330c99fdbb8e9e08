package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a club inside exactly one league. Slug is unique per league.
type Team struct {
	ID           int64
	LeagueID     int64
	Name         string
	Slug         string
	Abbreviation string
	SourceTeamID string
	LogoURL      string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Slugify derives the per-league identity of a team name: trimmed, lower-cased,
// every space replaced by "-". "FC Example" and "fc example" share a slug.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

func (t Team) Validate() error {
	if t.LeagueID <= 0 {
		return fmt.Errorf("team league id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if t.Slug == "" {
		return fmt.Errorf("team slug is required")
	}

	return nil
}
