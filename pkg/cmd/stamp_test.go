package cmd

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/cmd/testutil"
	"github.com/pseudomuto/alembic-tools/pkg/stamp"
	"github.com/stretchr/testify/require"
)

func versionDB(t *testing.T, table string, versions ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec("CREATE TABLE " + table + " (version_num VARCHAR(32) NOT NULL PRIMARY KEY)")
	require.NoError(t, err)

	for _, v := range versions {
		_, err := db.Exec("INSERT INTO "+table+" (version_num) VALUES (?)", v)
		require.NoError(t, err)
	}

	return path
}

func recorded(t *testing.T, path, table string) []string {
	t.Helper()

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows, err := db.Query("SELECT version_num FROM " + table)
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		out = append(out, v)
	}

	require.NoError(t, rows.Err())
	return out
}

func TestStampCommand(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("aaaaaaaaaaaa", "cccccccccccc")...)
	path := versionDB(t, "alembic_version", "bbbbbbbbbbbb")

	out, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--dsn", "sqlite://"+path, "--from", "bbbbbbbbbbbb", "--to", "cccc")
	require.NoError(t, err)
	require.Equal(t, "Stamped sqlite://"+path+" with cccccccccccc (was bbbbbbbbbbbb)\n", out)
	require.Equal(t, []string{"cccccccccccc"}, recorded(t, path, "alembic_version"))
}

func TestStampCommand_ConfiguredDatabase(t *testing.T) {
	path := versionDB(t, "app_version", "bbbbbbbbbbbb")
	fixture := testutil.TestProject(t).
		WithConfig("database:\n  dsn: sqlite://" + path + "\n  table: app_version\n").
		WithRevisions(testutil.Chain("aaaaaaaaaaaa", "cccccccccccc")...)

	_, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--from", "bbbbbbbbbbbb", "--to", "cccccccccccc")
	require.NoError(t, err)
	require.Equal(t, []string{"cccccccccccc"}, recorded(t, path, "app_version"))
}

func TestStampCommand_Errors(t *testing.T) {
	fixture := testutil.TestProject(t).WithRevisions(testutil.Chain("aaaaaaaaaaaa", "cccccccccccc")...)

	t.Run("no database", func(t *testing.T) {
		_, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--from", "bbbbbbbbbbbb", "--to", "cccc")
		require.ErrorContains(t, err, "no database")
	})

	t.Run("unknown target", func(t *testing.T) {
		path := versionDB(t, "alembic_version", "bbbbbbbbbbbb")

		_, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--dsn", "sqlite://"+path, "--from", "bbbbbbbbbbbb", "--to", "ffff")
		require.ErrorContains(t, err, "ffff")
		require.Equal(t, []string{"bbbbbbbbbbbb"}, recorded(t, path, "alembic_version"))
	})

	t.Run("not at the expected revision", func(t *testing.T) {
		path := versionDB(t, "alembic_version", "aaaaaaaaaaaa")

		_, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--dsn", "sqlite://"+path, "--from", "bbbbbbbbbbbb", "--to", "cccc")

		var notStamped *stamp.NotStampedError
		require.True(t, errors.As(err, &notStamped))
		require.Equal(t, []string{"aaaaaaaaaaaa"}, notStamped.Current)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := testutil.RunCommand(t, stampCmd(fixture.Project), "--dsn", "mysql://localhost/app", "--from", "bbbbbbbbbbbb", "--to", "cccc")
		require.ErrorContains(t, err, "unsupported database scheme: mysql")
	})
}
