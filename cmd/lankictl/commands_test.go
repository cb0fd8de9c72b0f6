package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProblemCmd(t *testing.T) {
	out, err := run(t, "problem", "https://leetcode.com/problems/two-sum/description/")
	require.NoError(t, err)
	assert.Contains(t, out, "kind:      problem")
	assert.Contains(t, out, "title:     Two Sum")
	assert.Contains(t, out, "canonical: https://leetcode.com/problems/two-sum")

	out, err = run(t, "problem", "https://leetcode.com/problemset/")
	require.NoError(t, err)
	assert.Equal(t, "kind:      listing\n", out)
}

func TestRateThenNext(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lanki.db")

	out, err := run(t, "--db", dbPath, "rate", "ada@example.com", "https://leetcode.com/problems/two-sum/?tab=1", "hard")
	require.NoError(t, err)
	assert.Equal(t, "rated https://leetcode.com/problems/two-sum as Hard\n", out)

	// The only history is the current problem, so there is nothing else to review.
	out, err = run(t, "--db", dbPath, "next", "ada@example.com", "--current", "https://leetcode.com/problems/two-sum/")
	require.NoError(t, err)
	assert.Equal(t, "nothing to review\n", out)
}

func TestRateCmd_BadDifficulty(t *testing.T) {
	_, err := run(t, "--db", filepath.Join(t.TempDir(), "lanki.db"), "rate", "ada@example.com", "https://leetcode.com/problems/two-sum/", "brutal")
	assert.Error(t, err)
}

func TestRateThenHistoryAndEvents(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lanki.db")

	_, err := run(t, "--db", dbPath, "rate", "ada@example.com", "https://leetcode.com/problems/two-sum/", "easy")
	require.NoError(t, err)
	_, err = run(t, "--db", dbPath, "rate", "ada@example.com", "https://leetcode.com/problems/two-sum/description/", "hard")
	require.NoError(t, err)

	out, err := run(t, "--db", dbPath, "history", "ada@example.com", "https://leetcode.com/problems/two-sum/")
	require.NoError(t, err)
	assert.Regexp(t, `1\s+Easy`, out)
	assert.Regexp(t, `2\s+Hard`, out)

	out, err = run(t, "--db", dbPath, "events", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "difficulty_button_press"))
	assert.Contains(t, out, "hard https://leetcode.com/problems/two-sum")

	out, err = run(t, "--db", dbPath, "history", "ada@example.com", "https://leetcode.com/problems/3sum/")
	require.NoError(t, err)
	assert.Equal(t, "no ratings for https://leetcode.com/problems/3sum\n", out)
}

func TestEventsCmd_UnknownUser(t *testing.T) {
	_, err := run(t, "--db", filepath.Join(t.TempDir(), "lanki.db"), "events", "nobody@example.com")
	assert.Error(t, err)
}
