package pointdb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirrorfield/symmetry.report/internal/geom"
	"github.com/mirrorfield/symmetry.report/internal/symmetry"
)

// migrationsDir points at the repository migrations from this package.
const migrationsDir = "../../migrations"

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.MigrateUp(migrationsDir))
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.MigrateUp(migrationsDir))

	version, dirty, err := db.MigrateVersion(migrationsDir)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(1), version)
}

func TestSaveAndLoadDataset(t *testing.T) {
	db := openTestDB(t)

	pts := []geom.Point{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}
	id, err := db.SaveDataset("square", pts)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	ps, err := db.LoadDataset("square")
	require.NoError(t, err)
	require.Equal(t, len(pts), ps.Len())
	for i, p := range pts {
		assert.Equal(t, p, ps.At(i), "order must survive the round trip")
	}
}

func TestSaveDatasetEmpty(t *testing.T) {
	db := openTestDB(t)
	_, err := db.SaveDataset("empty", nil)
	assert.ErrorIs(t, err, geom.ErrEmptyPointSet)
}

func TestSaveDatasetDuplicateName(t *testing.T) {
	db := openTestDB(t)
	pts := []geom.Point{{X: 0, Y: 0}}

	_, err := db.SaveDataset("dup", pts)
	require.NoError(t, err)
	_, err = db.SaveDataset("dup", pts)
	assert.Error(t, err, "dataset names are unique")
}

func TestLoadDatasetMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadDataset("nope")
	assert.True(t, errors.Is(err, geom.ErrEmptyPointSet), "missing dataset surfaces as empty, got %v", err)
}

func TestListDatasets(t *testing.T) {
	db := openTestDB(t)

	_, err := db.SaveDataset("one", []geom.Point{{X: 0, Y: 0}})
	require.NoError(t, err)
	_, err = db.SaveDataset("two", []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)

	infos, err := db.ListDatasets()
	require.NoError(t, err)
	require.Len(t, infos, 2)

	counts := map[string]int{}
	for _, info := range infos {
		counts[info.Name] = info.PointCount
		assert.NotEmpty(t, info.DatasetID)
	}
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, counts)
}

func TestRecordAnalysis(t *testing.T) {
	db := openTestDB(t)

	id, err := db.SaveDataset("square", []geom.Point{{X: 1, Y: 1}, {X: -1, Y: -1}})
	require.NoError(t, err)

	cfg := symmetry.Config{PointEpsilon: 1e-6, AngleEpsilon: 1e-6}
	res := symmetry.Result{Lines: []geom.Line{
		geom.NewLine(0, geom.Point{}),
		geom.NewLine(1.2, geom.Point{}),
	}}
	runID, err := db.RecordAnalysis(id, cfg, res)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	var axisCount int
	require.NoError(t, db.QueryRow(`SELECT axis_count FROM analysis_runs WHERE run_id = ?`, runID).Scan(&axisCount))
	assert.Equal(t, 2, axisCount)

	var angles int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM axes WHERE run_id = ?`, runID).Scan(&angles))
	assert.Equal(t, 2, angles)
}
