package model

import "time"

// TimeLayout is the fixed-width UTC layout used when timestamps are stored
// as strings.  Values sort lexically in chronological order.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Match is one played match.  The fourteen counters used by the stats
// engine are always numeric once a row has been sanitized; the remaining
// numeric fields are optional and stay nil when they were not supplied.
type Match struct {
	Date        string `json:"date" dynamodbav:"date"`
	Opponent    string `json:"opponent,omitempty" dynamodbav:"opponent,omitempty"`
	Location    string `json:"location,omitempty" dynamodbav:"location,omitempty"`
	Surface     string `json:"surface,omitempty" dynamodbav:"surface,omitempty"`
	MatchFormat string `json:"match_format,omitempty" dynamodbav:"match_format,omitempty"`
	Outcome     string `json:"outcome,omitempty" dynamodbav:"outcome,omitempty"`
	Notes       string `json:"notes,omitempty" dynamodbav:"notes,omitempty"`

	SetsPlayed *float64 `json:"sets_played,omitempty" dynamodbav:"sets_played,omitempty"`
	SetsWon    *float64 `json:"sets_won,omitempty" dynamodbav:"sets_won,omitempty"`
	GamesWon   *float64 `json:"games_won,omitempty" dynamodbav:"games_won,omitempty"`
	GamesLost  *float64 `json:"games_lost,omitempty" dynamodbav:"games_lost,omitempty"`

	FirstServesMade        float64 `json:"first_serves_made" dynamodbav:"first_serves_made"`
	FirstServesAttempted   float64 `json:"first_serves_attempted" dynamodbav:"first_serves_attempted"`
	FirstServePointsWon    float64 `json:"first_serve_points_won" dynamodbav:"first_serve_points_won"`
	FirstServePointsTotal  float64 `json:"first_serve_points_total" dynamodbav:"first_serve_points_total"`
	SecondServePointsWon   float64 `json:"second_serve_points_won" dynamodbav:"second_serve_points_won"`
	SecondServePointsTotal float64 `json:"second_serve_points_total" dynamodbav:"second_serve_points_total"`
	Aces                   float64 `json:"aces" dynamodbav:"aces"`
	DoubleFaults           float64 `json:"double_faults" dynamodbav:"double_faults"`
	BreakPointsWon         float64 `json:"break_points_won" dynamodbav:"break_points_won"`
	BreakPointsTotal       float64 `json:"break_points_total" dynamodbav:"break_points_total"`
	ReturnPointsWon        float64 `json:"return_points_won" dynamodbav:"return_points_won"`
	ReturnPointsTotal      float64 `json:"return_points_total" dynamodbav:"return_points_total"`
	Winners                float64 `json:"winners" dynamodbav:"winners"`
	UnforcedErrors         float64 `json:"unforced_errors" dynamodbav:"unforced_errors"`

	NetPointsWon   *float64 `json:"net_points_won,omitempty" dynamodbav:"net_points_won,omitempty"`
	NetPointsTotal *float64 `json:"net_points_total,omitempty" dynamodbav:"net_points_total,omitempty"`
	AvgRallyLength *float64 `json:"avg_rally_length,omitempty" dynamodbav:"avg_rally_length,omitempty"`
}

// MatchRecord is a stored match owned by exactly one user.  It is keyed
// by (UserEmail, MatchID).  Records are immutable after creation, so
// UpdatedAt always equals CreatedAt.
//
// Fields:
//
//	UserEmail – normalized email of the owner (foreign key into users).
//	MatchID   – random UUID generated on creation.
//	Match     – the sanitized match payload.
//	CreatedAt – creation timestamp (UTC, millisecond precision).
//	UpdatedAt – last update timestamp; equal to CreatedAt.
type MatchRecord struct {
	UserEmail string    `json:"-" dynamodbav:"userEmail"`
	MatchID   string    `json:"matchId" dynamodbav:"matchId"`
	Match     Match     `json:"match" dynamodbav:"match"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}
