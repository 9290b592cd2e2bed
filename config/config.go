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

// Package config loads the application configuration from a YAML file and
// HUMMER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tomoncle/hummerdata/database"
	"github.com/tomoncle/hummerdata/types"
	"github.com/tomoncle/hummerdata/utils"
)

// EnvPrefix prefixes environment overrides, e.g. HUMMER_SERVER_ADDR.
const EnvPrefix = "HUMMER"

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// CacheConfig selects the page cache. Type is "none", "memory" or "redis".
type CacheConfig struct {
	Type      string        `mapstructure:"type"`
	Addr      string        `mapstructure:"addr"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	Namespace string        `mapstructure:"namespace"`
}

// LogConfig selects the database log backend ("logrus" or "zap") and the
// console format of the logrus loggers.
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	Backend string `mapstructure:"backend"`
}

// PaginationConfig bounds page sizes accepted from clients.
type PaginationConfig struct {
	DefaultSize int `mapstructure:"default_size"`
	MaxSize     int `mapstructure:"max_size"`
}

type AppConfig struct {
	Server     ServerConfig               `mapstructure:"server"`
	Database   database.ConnectionConfig  `mapstructure:"database"`
	Migrate    database.DataMigrateConfig `mapstructure:"migrate"`
	Seed       database.DataInitConfig    `mapstructure:"seed"`
	Cache      CacheConfig                `mapstructure:"cache"`
	Log        LogConfig                  `mapstructure:"log"`
	Pagination PaginationConfig           `mapstructure:"pagination"`
}

// ConfigLoader implements database.AbstractDatabaseConfigProvider.
func (c *AppConfig) ConfigLoader() *database.Config {
	return &database.Config{
		ConnectionConfig:  c.Database,
		DataMigrateConfig: c.Migrate,
		DataInitConfig:    c.Seed,
	}
}

// Validate checks the settings that have no safe fallback.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Pagination.DefaultSize < 1 {
		errs = append(errs, fmt.Errorf("pagination.default_size must be at least 1, got %d", c.Pagination.DefaultSize))
	}
	if c.Pagination.MaxSize < c.Pagination.DefaultSize {
		errs = append(errs, fmt.Errorf("pagination.max_size %d is below default_size %d",
			c.Pagination.MaxSize, c.Pagination.DefaultSize))
	}
	switch c.Cache.Type {
	case "", "none", "memory":
	case "redis":
		if c.Cache.Addr == "" {
			errs = append(errs, errors.New("cache.addr is required for the redis cache"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cache.type %q", c.Cache.Type))
	}
	switch c.Log.Backend {
	case "", "logrus", "zap":
	default:
		errs = append(errs, fmt.Errorf("unknown log.backend %q", c.Log.Backend))
	}
	if c.Database.Type == "" {
		errs = append(errs, errors.New("database.type is required"))
	}
	return errors.Join(errs...)
}

// ApplyLogging configures the shared loggers from the log section.
func (c *AppConfig) ApplyLogging() {
	utils.ConfigureConsoleLogFormat(c.Log.Format)
	utils.ConfigureLogLevel(c.Log.Level)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	conn := database.DefaultConnectionConfig()
	v.SetDefault("database.type", database.TypeSQLite)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", database.MemoryDBName)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", conn.MaxIdleConns)
	v.SetDefault("database.max_open_conns", conn.MaxOpenConns)
	v.SetDefault("database.conn_max_lifetime", conn.ConnMaxLifetime)
	v.SetDefault("database.conn_max_idle_time", conn.ConnMaxIdleTime)
	v.SetDefault("database.connect_timeout", conn.ConnectTimeout)
	v.SetDefault("database.read_timeout", conn.ReadTimeout)
	v.SetDefault("database.write_timeout", conn.WriteTimeout)
	v.SetDefault("database.enable_reconnect", conn.EnableReconnect)
	v.SetDefault("database.reconnect_interval", conn.ReconnectInterval)
	v.SetDefault("database.max_reconnect_tries", conn.MaxReconnectTries)
	v.SetDefault("database.health_check_interval", conn.HealthCheckInterval)
	v.SetDefault("database.enable_query_log", false)
	v.SetDefault("database.slow_query_time", conn.SlowQueryTime)

	v.SetDefault("migrate.enable_migrate_on_startup", true)
	v.SetDefault("migrate.enable_foreign_key", false)
	v.SetDefault("migrate.foreign_key_file", "")

	v.SetDefault("seed.auto_init_on_startup", false)
	v.SetDefault("seed.auto_init_on_migration", false)
	v.SetDefault("seed.filepath", "configs/sql")
	v.SetDefault("seed.environment", "dev")

	v.SetDefault("cache.type", "none")
	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("cache.namespace", "pets")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.backend", "logrus")

	v.SetDefault("pagination.default_size", types.DefaultPageSize)
	v.SetDefault("pagination.max_size", 100)
}

// Load reads configuration from path, which may name a YAML file or a
// directory holding config.yaml. An empty path searches "." and "./configs".
// A missing config.yaml in a searched directory is not an error; defaults and
// environment variables apply.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if info, err := os.Stat(path); path != "" && err == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if path != "" {
			v.AddConfigPath(path)
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./configs")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
