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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/hummerdata/database"
)

const sampleYAML = `
server:
  addr: ":9090"
  shutdown_timeout: 3s
database:
  type: postgres
  host: db.internal
  port: 5432
  dbname: petstore
  conn_max_lifetime: 30m
migrate:
  enable_foreign_key: true
seed:
  environment: test
cache:
  type: memory
  ttl: 30s
pagination:
  default_size: 20
  max_size: 50
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadFromDirectory(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, database.TypePostgres, cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Migrate.EnableForeignKey)
	assert.True(t, cfg.Migrate.EnableMigrateOnStartup)
	assert.Equal(t, "test", cfg.Seed.Environment)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, PaginationConfig{DefaultSize: 20, MaxSize: 50}, cfg.Pagination)
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "petstore", cfg.Database.DBName)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, database.TypeSQLite, cfg.Database.Type)
	assert.Equal(t, database.MemoryDBName, cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("HUMMER_PAGINATION_MAX_SIZE", "75")
	t.Setenv("HUMMER_DATABASE_HOST", "from-env")
	t.Setenv("HUMMER_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Pagination.MaxSize)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	_, err := Load(writeConfig(t, "pagination:\n  default_size: 0\n"))
	assert.ErrorContains(t, err, "default_size")

	_, err = Load(writeConfig(t, "pagination:\n  default_size: 20\n  max_size: 5\n"))
	assert.ErrorContains(t, err, "max_size")

	_, err = Load(writeConfig(t, "cache:\n  type: redis\n"))
	assert.ErrorContains(t, err, "cache.addr")

	_, err = Load(writeConfig(t, "cache:\n  type: memcached\n"))
	assert.ErrorContains(t, err, "memcached")

	_, err = Load(writeConfig(t, "log:\n  backend: syslog\n"))
	assert.ErrorContains(t, err, "syslog")
}

func TestLoadBrokenFile(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
}

func TestConfigLoader(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	var provider database.AbstractDatabaseConfigProvider = cfg
	dbCfg := provider.ConfigLoader()
	assert.Equal(t, cfg.Database, dbCfg.ConnectionConfig)
	assert.True(t, dbCfg.DataMigrateConfig.EnableForeignKey)
	assert.Equal(t, "configs/sql", dbCfg.DataInitConfig.Filepath)
}
