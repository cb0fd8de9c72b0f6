package review_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lanki/internal/models"
	"github.com/vytor/lanki/internal/review"
)

func accesses(n int) []models.AccessRecord {
	out := make([]models.AccessRecord, n)
	for i := range out {
		out[i] = models.AccessRecord{Difficulty: models.Easy, TimeAttempted: fmt.Sprintf("2024-01-%02dT00:00:00Z", i+1)}
	}
	return out
}

func TestPushAccess_BelowCap(t *testing.T) {
	rec := models.AccessRecord{Difficulty: models.Hard, TimeAttempted: "2024-02-01T00:00:00Z"}

	out := review.PushAccess(accesses(3), rec, 10)
	require.Len(t, out, 4)
	assert.Equal(t, rec, out[3])

	out = review.PushAccess(nil, rec, 10)
	assert.Equal(t, []models.AccessRecord{rec}, out)
}

func TestPushAccess_EvictsOldestAtCap(t *testing.T) {
	existing := accesses(10)
	rec := models.AccessRecord{Difficulty: models.Hard, TimeAttempted: "2024-02-01T00:00:00Z"}

	out := review.PushAccess(existing, rec, 10)

	require.Len(t, out, 10)
	assert.Equal(t, existing[1:], out[:9], "remaining nine keep their order")
	assert.Equal(t, rec, out[9])
	assert.Equal(t, "2024-01-01T00:00:00Z", existing[0].TimeAttempted, "input untouched")
}

func TestPushAccess_OverfullInputIsTrimmed(t *testing.T) {
	out := review.PushAccess(accesses(15), models.AccessRecord{Difficulty: models.Medium}, 10)

	require.Len(t, out, 10)
	assert.Equal(t, "2024-01-07T00:00:00Z", out[0].TimeAttempted)
}

func TestPushAccess_DefaultCap(t *testing.T) {
	out := review.PushAccess(accesses(10), models.AccessRecord{}, 0)
	assert.Len(t, out, models.DefaultHistoryCap)
}
