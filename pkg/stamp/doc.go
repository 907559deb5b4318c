// Package stamp moves a database's alembic version record from one revision
// to another without running any migration.
//
// A squash replaces two revisions with a single one that keeps the child's
// id. A database whose version table still names the absorbed parent must be
// restamped to the surviving id before alembic can upgrade it again:
//
//	store, err := stamp.Open(ctx, "postgres://localhost:5432/app", "alembic_version")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	err = stamp.Stamp(ctx, store, "ae1027a6acf0", "27c6a30d7c24")
//
// The DSN scheme picks the backend: postgres:// and postgresql:// use pgx,
// sqlite:// and sqlite3:// use go-sqlite3 and clickhouse:// uses
// clickhouse-go.
package stamp
