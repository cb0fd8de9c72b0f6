package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/models"
)

func TestAccessRecord_AttemptedAt(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	rec := models.NewAccessRecord(models.Medium, ts)
	got, ok := rec.AttemptedAt()
	require.True(t, ok)
	assert.True(t, ts.Equal(got))

	for _, raw := range []string{"", "yesterday", "2024-13-45T00:00:00Z"} {
		_, ok := models.AccessRecord{Difficulty: models.Easy, TimeAttempted: raw}.AttemptedAt()
		assert.False(t, ok, "expected %q to be unparseable", raw)
	}

	_, ok = models.AccessRecord{TimeAttempted: "2024-05-06"}.AttemptedAt()
	assert.True(t, ok)
}

func TestAttemptHistory_Latest(t *testing.T) {
	_, ok := models.AttemptHistory{}.Latest()
	assert.False(t, ok)

	h := models.AttemptHistory{RecentAccesses: []models.AccessRecord{
		{Difficulty: models.Easy, TimeAttempted: "2024-01-01T00:00:00Z"},
		{Difficulty: models.Hard, TimeAttempted: "2024-01-02T00:00:00Z"},
	}}
	last, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, models.Hard, last.Difficulty)
}
