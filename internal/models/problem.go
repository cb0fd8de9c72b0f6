package models

// UnknownProblemName is shown for problems whose name cannot be derived or whose history is malformed.
const UnknownProblemName = "Unknown Problem"

// Problem is a ranked review candidate. Score is only meaningful within one ranking.
type Problem struct {
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Difficulty Difficulty `json:"difficulty"`
	Score      float64    `json:"score"`
}
