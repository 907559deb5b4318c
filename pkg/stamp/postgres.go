package stamp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

type postgresStore struct {
	conn  *pgx.Conn
	table string
}

func openPostgres(ctx context.Context, dsn, table string) (Store, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, errors.Wrap(err, "failed to ping postgres")
	}

	return &postgresStore{
		conn:  conn,
		table: pgx.Identifier(strings.Split(table, ".")).Sanitize(),
	}, nil
}

func (s *postgresStore) Versions(ctx context.Context) ([]string, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf("SELECT version_num FROM %s", s.table))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.table)
	}

	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.table)
	}

	return versions, nil
}

func (s *postgresStore) Replace(ctx context.Context, from, to string) (int64, error) {
	tag, err := s.conn.Exec(ctx, fmt.Sprintf("UPDATE %s SET version_num = $1 WHERE version_num = $2", s.table), to, from)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (s *postgresStore) Close() error {
	return s.conn.Close(context.Background())
}
