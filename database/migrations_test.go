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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func TestRunMigrations(t *testing.T) {
	db := newTestDB(t)
	root := seedTree(t)
	fkFile := filepath.Join(t.TempDir(), "fk.yaml")
	require.NoError(t, NewForeignKeyManager(nil, ForeignKeyConstraint{
		Table: "pets", Column: "owner_id", ReferenceTable: "owners", ReferenceColumn: "id",
	}).ExportToConfig(fkFile))

	mm := NewMigrationManager(db, nil, MigrationOptions{
		Registry:         testRegistry(),
		EnableForeignKey: true,
		ForeignKeyFile:   fkFile,
		SeedOnMigration:  true,
		SQLRootPath:      root,
		Environment:      "dev",
	})
	ctx := context.Background()
	require.NoError(t, mm.RunMigrations(ctx))
	// applied migrations are skipped, so seeds do not run twice
	require.NoError(t, mm.RunMigrations(ctx))

	applied, err := mm.GetAppliedMigrations(ctx)
	require.NoError(t, err)
	var versions []string
	for _, m := range applied {
		versions = append(versions, m.Version)
	}
	assert.Equal(t, []string{"001", "002", "003"}, versions)

	n, err := db.NewSelect().Model((*owner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRunMigrationsInvalidForeignKeys(t *testing.T) {
	db := newTestDB(t)
	fkFile := filepath.Join(t.TempDir(), "fk.yaml")
	require.NoError(t, NewForeignKeyManager(nil, ForeignKeyConstraint{Table: "pets"}).ExportToConfig(fkFile))

	mm := NewMigrationManager(db, nil, MigrationOptions{
		Registry:         testRegistry(),
		EnableForeignKey: true,
		ForeignKeyFile:   fkFile,
	})
	err := mm.RunMigrations(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002")
}

func TestCustomMigrationAndRollback(t *testing.T) {
	db := newTestDB(t)
	mm := NewMigrationManager(db, nil, MigrationOptions{Registry: testRegistry()})
	mm.AddMigration(MigrationItem{
		Version: "100",
		Name:    "default_owner",
		Up: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewInsert().Model(&owner{Name: "Mr. Slate"}).Exec(ctx)
			return err
		},
		Down: func(ctx context.Context, db bun.IDB) error {
			_, err := db.NewDelete().Model((*owner)(nil)).Where("name = ?", "Mr. Slate").Exec(ctx)
			return err
		},
	})
	ctx := context.Background()
	require.NoError(t, mm.RunMigrations(ctx))

	n, err := db.NewSelect().Model((*owner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, mm.RollbackMigration(ctx, "100"))
	n, err = db.NewSelect().Model((*owner)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, mm.RollbackMigration(ctx, "100"), ErrMigrationNotFound)
	assert.ErrorIs(t, mm.RollbackMigration(ctx, "404"), ErrMigrationNotFound)
}
