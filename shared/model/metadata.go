package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// Stamp fills every metadata field for a freshly created row.
func (m *Metadata) Stamp(now time.Time, actor string) {
	m.CreatedAt = now
	m.ModifiedAt = now
	m.CreatedBy = actor
	m.ModifiedBy = actor
}
