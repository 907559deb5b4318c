package stamp

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type sqliteStore struct {
	db    *sql.DB
	table string
}

func openSQLite(ctx context.Context, path, table string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}

	return &sqliteStore{db: db, table: `"` + table + `"`}, nil
}

func (s *sqliteStore) Versions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT version_num FROM %s", s.table))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.table)
	}
	defer func() { _ = rows.Close() }()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", s.table)
		}
		versions = append(versions, v)
	}

	return versions, rows.Err()
}

func (s *sqliteStore) Replace(ctx context.Context, from, to string) (int64, error) {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET version_num = ? WHERE version_num = ?", s.table), to, from)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
