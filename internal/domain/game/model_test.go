package game

import (
	"testing"
	"time"
)

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus(""); got != StatusScheduled {
		t.Fatalf("expected scheduled default, got %q", got)
	}
	if got := NormalizeStatus(" FINAL "); got != StatusFinal {
		t.Fatalf("expected final, got %q", got)
	}
}

func TestGameValidate(t *testing.T) {
	g := Game{LeagueID: 1, HomeTeamID: 2, AwayTeamID: 3, GameDate: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)}
	if err := g.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := g
	same.AwayTeamID = same.HomeTeamID
	if err := same.Validate(); err == nil {
		t.Fatalf("expected error for identical home and away teams")
	}

	noDate := g
	noDate.GameDate = time.Time{}
	if err := noDate.Validate(); err == nil {
		t.Fatalf("expected error for missing date")
	}
}

func TestListFilterMatches(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 10, d, 0, 0, 0, 0, time.UTC) }
	f := ListFilter{DateFrom: day(5), DateTo: day(10)}

	if !f.Matches(Game{GameDate: day(5)}) || !f.Matches(Game{GameDate: day(10)}) {
		t.Fatalf("bounds must be inclusive")
	}
	if f.Matches(Game{GameDate: day(4)}) || f.Matches(Game{GameDate: day(11)}) {
		t.Fatalf("dates outside range must not match")
	}
	if !(ListFilter{}).Matches(Game{GameDate: day(1)}) {
		t.Fatalf("empty filter must match everything")
	}
}
