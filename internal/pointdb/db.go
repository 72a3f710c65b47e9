// Package pointdb persists named point datasets and analysis runs in
// SQLite. It is the storage side of the import boundary: datasets are
// written once and read back as immutable point sequences in their
// original order.
package pointdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
)

type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database at path.
// Schema setup is separate; see MigrateUp.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{db}, nil
}

// DatasetInfo describes one stored dataset.
type DatasetInfo struct {
	DatasetID  string    `json:"dataset_id"`
	Name       string    `json:"name"`
	PointCount int       `json:"point_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveDataset stores a named point sequence and returns its generated
// dataset ID. The insert is transactional: either the dataset row and
// every point land, or nothing does.
func (db *DB) SaveDataset(name string, pts []geom.Point) (string, error) {
	if len(pts) == 0 {
		return "", geom.ErrEmptyPointSet
	}
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	datasetID := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO datasets (dataset_id, name) VALUES (?, ?)`,
		datasetID, name,
	); err != nil {
		return "", fmt.Errorf("failed to insert dataset %q: %w", name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO points (dataset_id, seq, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range pts {
		if _, err := stmt.Exec(datasetID, i, p.X, p.Y); err != nil {
			return "", fmt.Errorf("failed to insert point %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit dataset %q: %w", name, err)
	}
	return datasetID, nil
}

// LoadDataset reads the named dataset back as a PointSet, preserving
// insertion order.
func (db *DB) LoadDataset(name string) (*geom.PointSet, error) {
	rows, err := db.Query(
		`SELECT p.x, p.y
		 FROM points p JOIN datasets d ON p.dataset_id = d.dataset_id
		 WHERE d.name = ?
		 ORDER BY p.seq`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset %q: %w", name, err)
	}
	defer rows.Close()

	var pts []geom.Point
	for rows.Next() {
		var x, y float64
		if err := rows.Scan(&x, &y); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		p, err := geom.NewPoint(x, y)
		if err != nil {
			return nil, fmt.Errorf("dataset %q: %w", name, err)
		}
		pts = append(pts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", name, err)
	}
	return geom.NewPointSet(pts)
}

// ListDatasets returns all stored datasets, newest first.
func (db *DB) ListDatasets() ([]DatasetInfo, error) {
	rows, err := db.Query(
		`SELECT d.dataset_id, d.name, COUNT(p.seq), d.created_at
		 FROM datasets d LEFT JOIN points p ON p.dataset_id = d.dataset_id
		 GROUP BY d.dataset_id
		 ORDER BY d.created_at DESC, d.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}
	defer rows.Close()

	var out []DatasetInfo
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.DatasetID, &info.Name, &info.PointCount, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// RecordAnalysis stores one analyzer run and its resulting axes,
// returning the generated run ID.
func (db *DB) RecordAnalysis(datasetID string, cfg symmetry.Config, res symmetry.Result) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	if _, err := tx.Exec(
		`INSERT INTO analysis_runs (run_id, dataset_id, point_epsilon, angle_epsilon, infinite, axis_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, datasetID, cfg.PointEpsilon, cfg.AngleEpsilon, res.Infinite, len(res.Lines),
	); err != nil {
		return "", fmt.Errorf("failed to insert analysis run: %w", err)
	}

	for i, l := range res.Lines {
		if _, err := tx.Exec(
			`INSERT INTO axes (run_id, ordinal, angle) VALUES (?, ?, ?)`,
			runID, i, l.Angle,
		); err != nil {
			return "", fmt.Errorf("failed to insert axis %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit analysis run: %w", err)
	}
	return runID, nil
}
