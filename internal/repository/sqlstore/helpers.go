package sqlstore

import (
	"database/sql"
	"encoding/json"

	"github.com/vytor/lanki/internal/models"
)

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func encodeAccesses(accesses []models.AccessRecord) (string, error) {
	if accesses == nil {
		accesses = []models.AccessRecord{}
	}
	b, err := json.Marshal(accesses)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeAccesses reads the stored access column. A malformed column yields an
// empty history rather than an error so one bad row cannot break a ranking.
func decodeAccesses(raw string) ([]models.AccessRecord, bool) {
	var accesses []models.AccessRecord
	if raw == "" {
		return nil, true
	}
	if err := json.Unmarshal([]byte(raw), &accesses); err != nil {
		return nil, false
	}
	return accesses, true
}
