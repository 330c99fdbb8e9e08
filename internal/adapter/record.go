package adapter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one normalized entity scraped from a source. Keys come from the
// Field* vocabulary; a key that is absent or nil is "not supplied".
type Record map[string]any

// League info.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldSourceURL   = "source_url"
	FieldLogoURL     = "logo_url"
)

// Standings. Also used by teams referenced from other records.
const (
	FieldTeamName       = "team_name"
	FieldAbbreviation   = "abbreviation"
	FieldSourceTeamID   = "source_team_id"
	FieldSeason         = "season"
	FieldRank           = "rank"
	FieldWins           = "wins"
	FieldLosses         = "losses"
	FieldTies           = "ties"
	FieldPoints         = "points"
	FieldGoalsFor       = "goals_for"
	FieldGoalsAgainst   = "goals_against"
	FieldGoalDifference = "goal_difference"
	FieldGamesPlayed    = "games_played"
	FieldWinPercentage  = "win_percentage"
)

// Games.
const (
	FieldSourceGameID = "source_game_id"
	FieldHomeTeam     = "home_team"
	FieldAwayTeam     = "away_team"
	FieldGameDate     = "game_date"
	FieldGameTime     = "game_time"
	FieldStatus       = "status"
	FieldHomeScore    = "home_score"
	FieldAwayScore    = "away_score"
	FieldVenue        = "venue"
)

// Roster entries.
const (
	FieldSourcePlayerID = "source_player_id"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldFullName       = "full_name"
	FieldJerseyNumber   = "jersey_number"
	FieldPosition       = "position"
	FieldPhotoURL       = "photo_url"
	FieldDateOfBirth    = "date_of_birth"
	FieldHeight         = "height"
	FieldWeight         = "weight"
)

// Player and team statistics.
const (
	FieldGoals          = "goals"
	FieldAssists        = "assists"
	FieldShots          = "shots"
	FieldShotsOnGoal    = "shots_on_goal"
	FieldPenaltyMinutes = "penalty_minutes"
	FieldPlusMinus      = "plus_minus"
	FieldShotsPerGame   = "shots_per_game"
	FieldGoalsPerGame   = "goals_per_game"
	FieldPowerPlayPct   = "power_play_percentage"
	FieldPenaltyKillPct = "penalty_kill_percentage"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the trimmed textual value of key. Numbers are formatted.
func (r Record) String(key string) (string, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", false
	}

	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case fmt.Stringer:
		return strings.TrimSpace(t.String()), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	default:
		return strings.TrimSpace(fmt.Sprint(t)), true
	}
}

// StringOr returns the value of key or def when it is not supplied.
func (r Record) StringOr(key, def string) string {
	if v, ok := r.String(key); ok {
		return v
	}
	return def
}

// Int accepts any integer type, integral floats and numeric strings such as "+3".
func (r Record) Int(key string) (int, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}

	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case uint:
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		return int(t), true
	case uint64:
		return int(t), true
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, false
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func (r Record) IntOr(key string, def int) int {
	if v, ok := r.Int(key); ok {
		return v
	}
	return def
}

// IntPtr returns nil when key is not supplied or not numeric.
func (r Record) IntPtr(key string) *int {
	v, ok := r.Int(key)
	if !ok {
		return nil
	}
	return &v
}

// Float accepts numeric values and strings; a trailing "%" is ignored.
func (r Record) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}

	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(t), "%")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		if n, ok := r.Int(key); ok {
			return float64(n), true
		}
		return 0, false
	}
}

func (r Record) FloatOr(key string, def float64) float64 {
	if v, ok := r.Float(key); ok {
		return v
	}
	return def
}

// Date parses key as a calendar date, truncated to UTC midnight.
func (r Record) Date(key string) (time.Time, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return time.Time{}, false
	}

	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return truncateDate(t), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return truncateDate(*t), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return truncateDate(parsed), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
