package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Difficulty is a problem tier, either LeetCode's published one or a user's self-rating.
type Difficulty int

const (
	DifficultyUnknown Difficulty = iota
	Easy
	Medium
	Hard
)

var difficultyNames = map[Difficulty]string{
	Easy:   "Easy",
	Medium: "Medium",
	Hard:   "Hard",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether d is one of Easy, Medium or Hard.
func (d Difficulty) Valid() bool {
	_, ok := difficultyNames[d]
	return ok
}

// Ordinal maps Easy, Medium and Hard to 0, 1 and 2. Unknown maps to -1.
func (d Difficulty) Ordinal() int {
	if !d.Valid() {
		return -1
	}
	return int(d - Easy)
}

// Multiplier is the review weight of a tier: Ordinal()+1, so never zero for a valid tier.
func (d Difficulty) Multiplier() float64 {
	if !d.Valid() {
		return 0
	}
	return float64(d.Ordinal() + 1)
}

// ParseDifficulty accepts a tier name in any case or a numeric ordinal code ("0".."2").
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	for d, name := range difficultyNames {
		if strings.EqualFold(s, name) {
			return d, nil
		}
	}
	if code, err := strconv.Atoi(s); err == nil {
		return DifficultyFromOrdinal(code)
	}
	return DifficultyUnknown, fmt.Errorf("unknown difficulty %q", s)
}

// DifficultyFromOrdinal is the inverse of Ordinal.
func DifficultyFromOrdinal(code int) (Difficulty, error) {
	d := Easy + Difficulty(code)
	if code < 0 || !d.Valid() {
		return DifficultyUnknown, fmt.Errorf("unknown difficulty code %d", code)
	}
	return d, nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts what MarshalText produces, including "Unknown".
func (d *Difficulty) UnmarshalText(text []byte) error {
	if string(text) == DifficultyUnknown.String() {
		*d = DifficultyUnknown
		return nil
	}
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// parseStoredDifficulty reads a stored difficulty that may be a JSON string or number.
// Anything unrecognized becomes DifficultyUnknown instead of failing the whole record.
func parseStoredDifficulty(raw json.RawMessage) Difficulty {
	if len(raw) == 0 {
		return DifficultyUnknown
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		d, _ := ParseDifficulty(s)
		return d
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		d, _ := DifficultyFromOrdinal(n)
		return d
	}
	return DifficultyUnknown
}
