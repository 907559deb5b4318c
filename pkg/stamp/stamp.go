package stamp

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

type (
	// Store reads and rewrites the rows of an alembic version table.
	Store interface {
		// Versions returns the revisions currently recorded.
		Versions(ctx context.Context) ([]string, error)

		// Replace swaps the row recording from for one recording to and
		// returns the number of rows replaced.
		Replace(ctx context.Context, from, to string) (int64, error)

		Close() error
	}

	// NotStampedError is returned when the database is not at the revision
	// being replaced.
	NotStampedError struct {
		Revision string
		Current  []string
	}
)

func (e *NotStampedError) Error() string {
	current := "no revision"
	if len(e.Current) > 0 {
		current = strings.Join(e.Current, ", ")
	}

	return fmt.Sprintf("database is not stamped with %s (found %s)", e.Revision, current)
}

// Open connects to the database named by dsn and returns a Store for table.
func Open(ctx context.Context, dsn, table string) (Store, error) {
	if !tableName.MatchString(table) {
		return nil, errors.Errorf("invalid version table name: %q", table)
	}

	scheme, _, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, errors.Errorf("dsn must start with a scheme such as postgres://: %s", Redact(dsn))
	}

	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return openPostgres(ctx, dsn, table)
	case "sqlite", "sqlite3":
		return openSQLite(ctx, strings.SplitN(dsn, "://", 2)[1], table)
	case "clickhouse":
		return openClickHouse(ctx, dsn, table)
	default:
		return nil, errors.Errorf("unsupported database scheme: %s", scheme)
	}
}

// Stamp replaces the recorded revision from with to. The database must
// currently record from; a database already at to is left alone.
func Stamp(ctx context.Context, store Store, from, to string) error {
	current, err := store.Versions(ctx)
	if err != nil {
		return err
	}

	if !slices.Contains(current, from) {
		if slices.Contains(current, to) {
			slog.Info("Database already stamped", "revision", to)
			return nil
		}

		return &NotStampedError{Revision: from, Current: current}
	}

	n, err := store.Replace(ctx, from, to)
	if err != nil {
		return errors.Wrapf(err, "failed to stamp %s over %s", to, from)
	}

	slog.Info("Stamped database", "from", from, "to", to, "rows", n)
	return nil
}

// Redact hides the password of a URL style DSN.
func Redact(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}

	userinfo := dsn[:at]
	if colon := strings.LastIndex(userinfo, ":"); colon > strings.Index(userinfo, "://")+2 {
		return userinfo[:colon] + ":xxxxx" + dsn[at:]
	}

	return dsn
}
