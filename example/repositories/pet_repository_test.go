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
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/hummerdata/cache"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/types"
)

func TestFindByNameLoadsOwner(t *testing.T) {
	db := newTestDB(t)
	seedPetstore(t, db)
	repo := NewPetRepository(db)

	dino, err := repo.FindByName(context.Background(), "Dino")
	require.NoError(t, err)
	assert.Equal(t, "Dino", dino.Name)
	require.NotNil(t, dino.Owner)
	assert.Equal(t, "Fred", dino.Owner.Name)

	_, err = repo.FindByName(context.Background(), "Bamm-Bamm")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListPetNames(t *testing.T) {
	db := newTestDB(t)
	seedPetstore(t, db)
	repo := NewPetRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, types.Unpaged())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	pageable, err := types.NewPageable(0, 2, types.SortOf(types.Asc("name")))
	require.NoError(t, err)
	first, err := repo.List(ctx, pageable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby Puss", "Dino"}, nameList(first))
}

func TestQueryAll(t *testing.T) {
	db := newTestDB(t)
	seedPetstore(t, db)
	repo := NewPetRepository(db)
	ctx := context.Background()

	page, err := repo.QueryAll(ctx, types.Unpaged())
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalSize())
	assert.Equal(t, 1, page.TotalPages())

	pageable, err := types.NewPageable(1, 1, types.SortOf(types.Desc("name")))
	require.NoError(t, err)
	page, err = repo.QueryAll(ctx, pageable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dino"}, nameList(page.Content()))
	assert.EqualValues(t, 3, page.TotalSize())
	assert.True(t, page.HasNext())
	assert.True(t, page.HasPrevious())

	cats, err := repo.QueryAllWhere(ctx, types.NewQueryFilter("type = ?", "CAT"), types.Unpaged())
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby Puss"}, nameList(cats.Content()))

	_, err = repo.QueryAll(ctx, types.Unpaged().WithSort(types.SortOf(types.Asc("colour"))))
	assert.ErrorIs(t, err, repository.ErrUnknownProperty)
}

func TestGetPetDTO(t *testing.T) {
	db := newTestDB(t)
	store := seedPetstore(t, db)
	repo := NewPetRepository(db)
	ctx := context.Background()

	byName, err := repo.GetByName(ctx, "Dino")
	require.NoError(t, err)
	assert.Equal(t, store.dino.ID, byName.ID)
	assert.Equal(t, store.fred.ID, byName.Owner.ID)

	byID, err := repo.GetByID(ctx, store.dino.ID)
	require.NoError(t, err)
	assert.Equal(t, *byName, *byID)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPetIDsAreAssignedOnInsert(t *testing.T) {
	db := newTestDB(t)
	store := seedPetstore(t, db)
	assert.NotEqual(t, uuid.Nil, store.dino.ID)

	found, err := NewPetRepository(db).FindByID(context.Background(), store.dino.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dino", found.Name)
}

func TestCachedNames(t *testing.T) {
	db := newTestDB(t)
	seedPetstore(t, db)
	repo := NewPetRepository(db)
	mem := cache.NewMemoryCache(0, 0)
	defer mem.Stop()
	cached := repository.NewCachedPageRepository(repo.Names(), mem, "pets", 0)
	ctx := context.Background()

	pageable, err := types.NewPageable(0, 2, types.SortOf(types.Asc("name")))
	require.NoError(t, err)
	page, err := cached.FindPage(ctx, pageable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby Puss", "Dino"}, nameList(page.Content()))

	// served from the cache even after the row is gone
	_, err = db.NewDelete().TableExpr("pets").Where("name = ?", "Dino").Exec(ctx)
	require.NoError(t, err)
	page, err = cached.FindPage(ctx, pageable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby Puss", "Dino"}, nameList(page.Content()))

	require.NoError(t, cached.Invalidate(ctx))
	page, err = cached.FindPage(ctx, pageable)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baby Puss", "Hoppy"}, nameList(page.Content()))
}
