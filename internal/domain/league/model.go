package league

import (
	"fmt"
	"strings"
	"time"
)

// League is one competition tracked from an external source platform.
type League struct {
	ID             int64
	Name           string
	Slug           string
	Description    string
	SourceURL      string
	SourcePlatform string
	LogoURL        string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasSource reports whether the league can be scheduled for reconciliation.
func (l League) HasSource() bool {
	return strings.TrimSpace(l.SourceURL) != "" && strings.TrimSpace(l.SourcePlatform) != ""
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Slug) == "" {
		return fmt.Errorf("league slug is required")
	}
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}
