package models

import "time"

type EventType string

const (
	EventDifficultyButtonPress      EventType = "difficulty_button_press"
	EventTryAgainButtonPress        EventType = "try_again_button_press"
	EventUpcomingProblemButtonPress EventType = "upcoming_problem_button_press"
)

// Event is one widget interaction written to the event log.
type Event struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Type       EventType `json:"event_type"`
	Difficulty string    `json:"difficulty,omitempty"`
	Problem    string    `json:"problem,omitempty"`
	Rank       *int      `json:"rank,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
