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

package repositories

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tomoncle/hummerdata/database"
	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	registry := database.NewModelRegistry()
	domain.RegisterModels(registry)
	mm := database.NewMigrationManager(db, nil, database.MigrationOptions{Registry: registry})
	require.NoError(t, mm.RunMigrations(context.Background()))
	return db
}

type petstore struct {
	fred, barney *domain.Owner
	dino         *domain.Pet
}

func seedPetstore(t *testing.T, db *bun.DB) petstore {
	t.Helper()
	ctx := context.Background()
	fred := &domain.Owner{Name: "Fred", Age: 45}
	barney := &domain.Owner{Name: "Barney", Age: 40}
	_, err := db.NewInsert().Model(&[]*domain.Owner{fred, barney}).Exec(ctx)
	require.NoError(t, err)

	dino := &domain.Pet{Name: "Dino", Type: domain.PetTypeDog, OwnerID: fred.ID}
	pets := []*domain.Pet{
		dino,
		{Name: "Baby Puss", Type: domain.PetTypeCat, OwnerID: fred.ID},
		{Name: "Hoppy", Type: domain.PetTypeDog, OwnerID: barney.ID},
	}
	_, err = db.NewInsert().Model(&pets).Exec(ctx)
	require.NoError(t, err)
	return petstore{fred: fred, barney: barney, dino: dino}
}

func nameList(names []*domain.NameDTO) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.Name
	}
	return out
}
