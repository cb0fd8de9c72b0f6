package leetcode

import (
	"errors"

	"github.com/vytor/lanki/internal/review"
)

var (
	ErrInvalidProblemURL = errors.New("invalid LeetCode problem URL")
	ErrUnknownDifficulty = errors.New("unknown difficulty level")
)

// Ensure Client implements the interface
var _ review.DifficultyFetcher = (*Client)(nil)
