package models

import (
	"encoding/json"
	"time"
)

// DefaultHistoryCap is how many self-ratings an AttemptHistory keeps per problem.
const DefaultHistoryCap = 10

// AccessRecord is one self-reported difficulty event for a problem attempt.
// TimeAttempted is kept as the stored text so unparseable values can be detected when scoring.
type AccessRecord struct {
	Difficulty    Difficulty `json:"difficulty"`
	TimeAttempted string     `json:"time_attempted"`
}

// NewAccessRecord stamps a rating with t in RFC 3339 UTC.
func NewAccessRecord(d Difficulty, t time.Time) AccessRecord {
	return AccessRecord{Difficulty: d, TimeAttempted: t.UTC().Format(time.RFC3339Nano)}
}

var accessTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// AttemptedAt parses TimeAttempted. ok is false when it is empty or unparseable.
func (r AccessRecord) AttemptedAt() (t time.Time, ok bool) {
	if r.TimeAttempted == "" {
		return time.Time{}, false
	}
	for _, layout := range accessTimeLayouts {
		if t, err := time.Parse(layout, r.TimeAttempted); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (r *AccessRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Difficulty    json.RawMessage `json:"difficulty"`
		TimeAttempted *string         `json:"time_attempted"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Difficulty = parseStoredDifficulty(raw.Difficulty)
	r.TimeAttempted = ""
	if raw.TimeAttempted != nil {
		r.TimeAttempted = *raw.TimeAttempted
	}
	return nil
}

// AttemptHistory is a user's rating history for one problem, oldest access first.
type AttemptHistory struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"user_id"`
	ProblemURL     string         `json:"problem_url"`
	RecentAccesses []AccessRecord `json:"recent_accesses"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Latest returns the most recent access, if any.
func (h AttemptHistory) Latest() (AccessRecord, bool) {
	if len(h.RecentAccesses) == 0 {
		return AccessRecord{}, false
	}
	return h.RecentAccesses[len(h.RecentAccesses)-1], true
}
