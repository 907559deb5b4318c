package stamp

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/pkg/errors"
)

// clickhouseStore rewrites the version table with an insert followed by a
// synchronous delete mutation, as version_num is usually part of the
// table's sorting key and cannot be updated in place.
type clickhouseStore struct {
	conn  driver.Conn
	table string
}

func openClickHouse(ctx context.Context, dsn, table string) (Store, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse clickhouse dsn")
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to clickhouse")
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "failed to ping clickhouse")
	}

	return &clickhouseStore{conn: conn, table: table}, nil
}

func (s *clickhouseStore) Versions(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf("SELECT version_num FROM %s", s.table))
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

func (s *clickhouseStore) Replace(ctx context.Context, from, to string) (int64, error) {
	var n uint64
	if err := s.conn.QueryRow(ctx, fmt.Sprintf("SELECT count() FROM %s WHERE version_num = ?", s.table), from).Scan(&n); err != nil {
		return 0, err
	}

	if n == 0 {
		return 0, nil
	}

	if err := s.conn.Exec(ctx, fmt.Sprintf("INSERT INTO %s (version_num) VALUES (?)", s.table), to); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("ALTER TABLE %s DELETE WHERE version_num = ? SETTINGS mutations_sync = 1", s.table)
	if err := s.conn.Exec(ctx, query, from); err != nil {
		return 0, err
	}

	return int64(n), nil
}

func (s *clickhouseStore) Close() error {
	return s.conn.Close()
}
