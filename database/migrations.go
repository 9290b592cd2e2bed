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
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/uptrace/bun"
)

var ErrMigrationNotFound = errors.New("migration not found")

// Migration is an applied migration record.
type Migration struct {
	bun.BaseModel `bun:"table:schema_migrations"`

	Version     string    `bun:"version,pk"`
	Name        string    `bun:"name"`
	AppliedAt   time.Time `bun:"applied_at"`
	Description string    `bun:"description"`
}

// MigrationFunc is a migration step executed within a transaction.
type MigrationFunc func(ctx context.Context, db bun.IDB) error

// MigrationItem describes a single migration version with up/down functions.
type MigrationItem struct {
	Version     string
	Name        string
	Description string
	Up          MigrationFunc
	Down        MigrationFunc
}

// MigrationOptions selects the built-in migrations.
type MigrationOptions struct {
	// Registry defaults to the package registry.
	Registry         ModelRegistry
	EnableForeignKey bool
	ForeignKeyFile   string
	SeedOnMigration  bool
	SQLRootPath      string
	Environment      string
}

// MigrationManager applies versioned migrations once each and records them
// in schema_migrations.
type MigrationManager struct {
	db     *bun.DB
	logger Logger
	opts   MigrationOptions
	extra  []MigrationItem
}

func NewMigrationManager(db *bun.DB, logger Logger, opts MigrationOptions) *MigrationManager {
	if opts.Registry == nil {
		opts.Registry = defaultRegistry
	}
	if opts.Environment == "" {
		opts.Environment = "development"
	}
	return &MigrationManager{db: db, logger: logger, opts: opts}
}

// AddMigration registers an application migration. Versions sort as strings
// after the built-in 001-003.
func (mm *MigrationManager) AddMigration(items ...MigrationItem) {
	mm.extra = append(mm.extra, items...)
}

// RunMigrations creates the tracking table if needed and applies pending
// migrations in ascending version order.
func (mm *MigrationManager) RunMigrations(ctx context.Context) error {
	if mm.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if _, ok := os.LookupEnv("BUNDEBUG_MIGRATION"); !ok {
		EnableBunSqlSilent(true)
		defer EnableBunSqlSilent(false)
	}

	if _, err := mm.db.NewCreateTable().Model((*Migration)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, migration := range mm.migrations() {
		if err := mm.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
	}
	mm.info("Database migrations completed!")
	return nil
}

func (mm *MigrationManager) migrations() []MigrationItem {
	items := []MigrationItem{{
		Version:     "001",
		Name:        "create_base_tables",
		Description: "Create base table structure",
		Up:          mm.createBaseTables,
		Down:        mm.dropBaseTables,
	}}
	if mm.opts.EnableForeignKey {
		items = append(items, MigrationItem{
			Version:     "002",
			Name:        "add_foreign_keys",
			Description: "Add table foreign key constraints",
			Up:          mm.addForeignKeys,
		})
	}
	if mm.opts.SeedOnMigration {
		items = append(items, MigrationItem{
			Version:     "003",
			Name:        "seed_initial_data",
			Description: "Seed initial data",
			Up:          mm.seedInitialData,
		})
	}
	items = append(items, mm.extra...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Version < items[j].Version })
	return items
}

func (mm *MigrationManager) runMigration(ctx context.Context, migration MigrationItem) error {
	exists, err := mm.db.NewSelect().
		Model((*Migration)(nil)).
		Where("version = ?", migration.Version).
		Exists(ctx)
	if err != nil || exists {
		return err
	}

	err = mm.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := migration.Up(ctx, tx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&Migration{
			Version:     migration.Version,
			Name:        migration.Name,
			AppliedAt:   time.Now(),
			Description: migration.Description,
		}).Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	mm.info("Migration executed successfully", "version", migration.Version, "name", migration.Name)
	return nil
}

func (mm *MigrationManager) createBaseTables(ctx context.Context, db bun.IDB) error {
	for _, model := range mm.opts.Registry.Instances() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table %T: %w", model, err)
		}
	}
	return nil
}

// dropBaseTables drops in reverse creation order.
func (mm *MigrationManager) dropBaseTables(ctx context.Context, db bun.IDB) error {
	models := mm.opts.Registry.Instances()
	for i := len(models) - 1; i >= 0; i-- {
		if _, err := db.NewDropTable().Model(models[i]).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table %T: %w", models[i], err)
		}
	}
	return nil
}

func (mm *MigrationManager) addForeignKeys(ctx context.Context, db bun.IDB) error {
	fkManager := NewForeignKeyManager(mm.logger)
	if path := mm.opts.ForeignKeyFile; path != "" {
		loaded, err := LoadForeignKeyManager(mm.logger, path)
		if err != nil {
			return err
		}
		fkManager = loaded
	}
	if errs := fkManager.ValidateConstraints(); len(errs) > 0 {
		return fmt.Errorf("foreign key constraint validation failed: %w", errors.Join(errs...))
	}
	return fkManager.AddAllForeignKeys(ctx, db)
}

// InitData seeds from SQL files outside of the migration history.
func (mm *MigrationManager) InitData(ctx context.Context) error {
	if mm.db == nil {
		return fmt.Errorf("database not initialized")
	}
	return mm.seedInitialData(ctx, mm.db)
}

func (mm *MigrationManager) seedInitialData(ctx context.Context, db bun.IDB) error {
	sqlManager := NewSQLInitManager(db, mm.opts.Environment)
	if mm.opts.SQLRootPath != "" {
		sqlManager.SetSQLRootPath(mm.opts.SQLRootPath)
	}
	sqlManager.SetLogger(mm.logger)
	if err := sqlManager.ExecuteInitialization(ctx); err != nil {
		return fmt.Errorf("SQL file initialization failed: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns migration records ordered by version.
func (mm *MigrationManager) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	err := mm.db.NewSelect().
		Model(&migrations).
		Order("version ASC").
		Scan(ctx)
	return migrations, err
}

// RollbackMigration runs the Down step of an applied migration and removes
// its record.
func (mm *MigrationManager) RollbackMigration(ctx context.Context, version string) error {
	var item *MigrationItem
	for _, m := range mm.migrations() {
		if m.Version == version {
			m := m
			item = &m
			break
		}
	}
	if item == nil {
		return fmt.Errorf("%w: %s", ErrMigrationNotFound, version)
	}
	if item.Down == nil {
		return fmt.Errorf("migration %s cannot be rolled back", version)
	}
	return mm.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewDelete().Model((*Migration)(nil)).Where("version = ?", version).Exec(ctx)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s not applied", ErrMigrationNotFound, version)
		}
		return item.Down(ctx, tx)
	})
}

func (mm *MigrationManager) info(msg string, fields ...interface{}) {
	if mm.logger != nil {
		mm.logger.Info(msg, fields...)
	}
}
