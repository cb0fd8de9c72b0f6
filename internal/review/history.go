package review

import "github.com/vytor/lanki/internal/models"

// PushAccess appends rec and evicts the oldest entries beyond limit, preserving order.
// The input slice is not modified.
func PushAccess(accesses []models.AccessRecord, rec models.AccessRecord, limit int) []models.AccessRecord {
	if limit <= 0 {
		limit = models.DefaultHistoryCap
	}
	out := make([]models.AccessRecord, 0, min(len(accesses)+1, limit))
	start := len(accesses) + 1 - limit
	if start < 0 {
		start = 0
	}
	if start < len(accesses) {
		out = append(out, accesses[start:]...)
	}
	return append(out, rec)
}
