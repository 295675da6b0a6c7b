package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// exportSchema mirrors the document as three tables. state and description
// on tasks are derived at export time; events remain the source of truth.
const exportSchema = `
CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	position    INTEGER NOT NULL,
	description TEXT NOT NULL,
	notes       TEXT DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL REFERENCES projects(id),
	position    INTEGER NOT NULL,
	state       TEXT NOT NULL,
	description TEXT NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id     TEXT NOT NULL REFERENCES tasks(id),
	seq         INTEGER NOT NULL,
	event_type  TEXT NOT NULL,
	data        TEXT NOT NULL,
	timestamp   DATETIME NOT NULL
);
`

// ExportStats counts the rows written by ExportSQLite.
type ExportStats struct {
	Projects int
	Tasks    int
	Events   int
}

// ExportSQLite writes the current collection into the SQLite database at
// dbPath, replacing any rows from a previous export.
func (s *Store) ExportSQLite(dbPath string) (ExportStats, error) {
	var stats ExportStats

	if err := s.checkUniqueIDs(); err != nil {
		return stats, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return stats, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(exportSchema); err != nil {
		return stats, fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return stats, fmt.Errorf("begin export: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"events", "tasks", "projects"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return stats, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pi, p := range s.projects {
		if _, err := tx.Exec(
			`INSERT INTO projects (id, position, description, notes) VALUES (?, ?, ?, ?)`,
			p.ID, pi, p.Description, p.Notes,
		); err != nil {
			return stats, fmt.Errorf("insert project: %w", err)
		}
		stats.Projects++

		for ti, t := range p.Tasks {
			if _, err := tx.Exec(
				`INSERT INTO tasks (id, project_id, position, state, description, created_at)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				t.ID, p.ID, ti, t.State().String(), t.Description(), t.CreatedAt,
			); err != nil {
				return stats, fmt.Errorf("insert task: %w", err)
			}
			stats.Tasks++

			for seq, e := range t.Events {
				if _, err := tx.Exec(
					`INSERT INTO events (task_id, seq, event_type, data, timestamp) VALUES (?, ?, ?, ?, ?)`,
					t.ID, seq, string(e.Kind), e.Data(), e.DateTime,
				); err != nil {
					return stats, fmt.Errorf("insert event: %w", err)
				}
				stats.Events++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit export: %w", err)
	}
	return stats, nil
}

// checkUniqueIDs names the first project or task id that appears twice,
// since the export tables are keyed on id.
func (s *Store) checkUniqueIDs() error {
	projects := make(map[string]int, len(s.projects))
	tasks := make(map[string][2]int)
	for pi, p := range s.projects {
		if prev, ok := projects[p.ID]; ok {
			return fmt.Errorf("export: duplicate project id %q (projects %d and %d)", p.ID, prev+1, pi+1)
		}
		projects[p.ID] = pi
		for ti, t := range p.Tasks {
			if prev, ok := tasks[t.ID]; ok {
				return fmt.Errorf("export: duplicate task id %q (project %d task %d and project %d task %d)",
					t.ID, prev[0]+1, prev[1]+1, pi+1, ti+1)
			}
			tasks[t.ID] = [2]int{pi, ti}
		}
	}
	return nil
}
