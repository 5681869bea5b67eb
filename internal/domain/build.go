package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuildReport - итоги одного прогона пайплайна.
type BuildReport struct {
	RunID         uuid.UUID `json:"run_id" db:"id"`
	Version       string    `json:"version" db:"version"`
	TablesVersion string    `json:"tables_version" db:"tables_version"`
	RawAirports   int       `json:"raw_airports" db:"raw_airports"`
	Qualified     int       `json:"qualified" db:"qualified"`
	UniqueIATA    int       `json:"unique_iata" db:"unique_iata"`
	Resolved      int       `json:"resolved" db:"resolved"`
	DroppedNoCost int       `json:"dropped_no_cost" db:"dropped_no_cost"`
	Published     int       `json:"published" db:"published"`
	StartedAt     time.Time `json:"started_at" db:"started_at"`
	FinishedAt    time.Time `json:"finished_at" db:"finished_at"`
}
