/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/dialect"
)

func TestInitDBWithSQLite(t *testing.T) {
	root := seedTree(t)
	RegisteredModel(NewModelAdapter((*owner)(nil), 10), NewModelAdapter((*pet)(nil), 20))
	cfg := &Config{
		ConnectionConfig:  ConnectionConfig{Type: TypeSQLite, DBName: memoryName(t)},
		DataMigrateConfig: DataMigrateConfig{EnableMigrateOnStartup: true},
		DataInitConfig:    DataInitConfig{AutoInitOnStartup: true, Filepath: root, Environment: "dev"},
	}
	ctx := context.Background()

	db, err := InitDB(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB() })

	assert.Same(t, db, GetDB())
	assert.Equal(t, dialect.SQLite, db.Dialect().Name())

	n, err := db.NewSelect().Model((*owner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	status := GetHealthStatus(ctx)
	assert.True(t, status.Healthy)
	assert.Equal(t, 1, GetDatabaseStats().MaxOpenConns)

	require.NoError(t, RunMigrations(ctx))

	require.NoError(t, CloseDB())
	assert.Nil(t, GetDB())
	assert.False(t, GetHealthStatus(ctx).Healthy)
	assert.Error(t, InitDataWithSQL(ctx, "dev"))
}

func TestInitDBRejectsUnknownType(t *testing.T) {
	_, err := InitDB(context.Background(), &Config{ConnectionConfig: ConnectionConfig{Type: "oracle"}})
	assert.ErrorContains(t, err, "unsupported database type")

	_, err = InitDB(context.Background(), nil)
	assert.Error(t, err)
}

func TestConnectionParams(t *testing.T) {
	cfg := &ConnectionConfig{Type: TypePgx, Username: "u", Password: "p", Host: "db", Port: 5432, DBName: "pets"}
	driver, dsn, d, err := connectionParams(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pgx", driver)
	assert.Equal(t, "postgres://u:p@db:5432/pets?sslmode=disable&connect_timeout=0", dsn)
	assert.Equal(t, dialect.PG, d.Name())

	cfg.Type = TypeMySQL
	driver, _, d, err = connectionParams(cfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", driver)
	assert.Equal(t, dialect.MySQL, d.Name())

	cfg.Type = "oracle"
	_, _, _, err = connectionParams(cfg)
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?cache=shared", sqliteDSN(MemoryDBName))
	assert.Equal(t, "file::memory:?cache=shared", sqliteDSN(""))
	assert.Equal(t, "petclinic.db", sqliteDSN("petclinic"))
	assert.Equal(t, "data/pets.db", sqliteDSN("data/pets.db"))
	assert.True(t, isMemoryDSN(sqliteDSN("file:x?mode=memory&cache=shared")))
}

func TestOverrideFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "override")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_ENABLE_QUERY_LOG", "true")
	t.Setenv("DB_CONN_MAX_LIFETIME", "60")
	cfg := ConnectionConfig{Host: "localhost", Port: 5432}

	overrideFromEnv(&cfg)
	assert.Equal(t, "override", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.True(t, cfg.EnableQueryLog)
	assert.Equal(t, "1m0s", cfg.ConnMaxLifetime.String())
}

func TestToFields(t *testing.T) {
	f := toFields([]interface{}{"a", 1, "b"})
	assert.Equal(t, 1, f["a"])
	assert.Equal(t, "b", f["extra"])
	assert.Empty(t, toFields(nil))
}
