package stamp_test

import (
	"context"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	. "github.com/pseudomuto/alembic-tools/pkg/stamp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	chcontainer "github.com/testcontainers/testcontainers-go/modules/clickhouse"
)

func TestStamp_ClickHouse(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := chcontainer.Run(ctx,
		"clickhouse/clickhouse-server:25.7-alpine",
		chcontainer.WithUsername("default"),
		chcontainer.WithPassword(""),
		testcontainers.WithEnv(map[string]string{"CLICKHOUSE_DEFAULT_ACCESS_MANAGEMENT": "1"}),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := clickhouse.ParseDSN(dsn)
	require.NoError(t, err)

	conn, err := clickhouse.Open(opts)
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	require.NoError(t, conn.Exec(ctx, "CREATE TABLE alembic_version (version_num String) ENGINE = MergeTree ORDER BY version_num"))
	require.NoError(t, conn.Exec(ctx, "INSERT INTO alembic_version (version_num) VALUES ('ae1027a6acf0')"))

	store, err := Open(ctx, dsn, "alembic_version")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, Stamp(ctx, store, "ae1027a6acf0", "27c6a30d7c24"))

	versions, err := store.Versions(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"27c6a30d7c24"}, versions)
}
