package sink

import (
	"acsward/domain/table"
	"acsward/internal/errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const createLoadTable = `
CREATE TABLE IF NOT EXISTS acs_ward_under5_pop (
	run_id     UUID        NOT NULL,
	district   TEXT        NOT NULL,
	pop_under5 BIGINT      NOT NULL,
	loaded_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresSink loads the final table into Postgres, one row per district,
// tagged with the run ID so repeated loads stay distinguishable.
type PostgresSink struct {
	db *sqlx.DB
}

// NewPostgresSink creates a Postgres sink over an open connection.
func NewPostgresSink(db *sqlx.DB) *PostgresSink {
	return &PostgresSink{db: db}
}

// Write ensures the load table exists and inserts every district row in a
// single transaction. The district identifier is the table's first column and
// the derived total its last.
func (s *PostgresSink) Write(runID uuid.UUID, t *table.Table) error {
	if !t.HasColumn("pop_under5") {
		return errors.DatabaseError("table has no pop_under5 column to load")
	}

	if _, err := s.db.Exec(createLoadTable); err != nil {
		return errors.Wrap(err, "failed to ensure load table exists")
	}

	pops, err := t.NumericColumn("pop_under5")
	if err != nil {
		return errors.Wrap(err, "failed to read pop_under5 column")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "failed to begin load transaction")
	}

	for i, row := range t.Rows() {
		_, err := tx.Exec(
			`INSERT INTO acs_ward_under5_pop (run_id, district, pop_under5) VALUES ($1, $2, $3)`,
			runID.String(), row[0], pops[i],
		)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "failed to insert district %s", row[0])
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit load transaction")
	}
	return nil
}
