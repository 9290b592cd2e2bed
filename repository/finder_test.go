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

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/hummerdata/types"
)

func TestFindOneBy(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	seedAuthors(t, repo, writers...)
	ctx := context.Background()

	a, err := repo.FindOneBy(ctx, "Name", "Neil Gaiman")
	require.NoError(t, err)
	assert.Equal(t, "Neil Gaiman", a.Name)

	_, err = repo.FindOneBy(ctx, "name", "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindOneBy(ctx, "age", 3)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestFindOneByIgnoreCase(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	seedAuthors(t, repo, writers...)

	a, err := repo.FindOneByIgnoreCase(context.Background(), "name", "NEIL gaiman")
	require.NoError(t, err)
	assert.Equal(t, "Neil Gaiman", a.Name)
}

func TestFindAllBy(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx,
		&author{Name: "b", Nickname: "x"},
		&author{Name: "a", Nickname: "x"},
		&author{Name: "c", Nickname: "y"},
	))

	found, err := repo.FindAllBy(ctx, "nickname", "x", types.SortOf(types.Asc("name")))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(found))
}

func TestLikeFinders(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	seedAuthors(t, repo, writers...)
	ctx := context.Background()
	byName := types.SortOf(types.Asc("name"))

	contains, err := repo.FindAllByContains(ctx, "name", "ai", byName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Neil Gaiman"}, names(contains))

	starts, err := repo.FindAllByStartsWith(ctx, "name", "Te", byName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Terry Pratchett"}, names(starts))

	ends, err := repo.FindAllByEndsWith(ctx, "name", "ng", byName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stephen King"}, names(ends))

	n, err := repo.CountByContains(ctx, "name", "e")
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)
}

func TestLikeFindersEscapeWildcards(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	seedAuthors(t, repo, "100% Pure", "1000 Pure", "snake_case", "snakeXcase", "bang!")
	ctx := context.Background()

	pct, err := repo.FindAllByContains(ctx, "name", "0%", types.Unsorted())
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Pure"}, names(pct))

	under, err := repo.FindAllByStartsWith(ctx, "name", "snake_", types.Unsorted())
	require.NoError(t, err)
	assert.Equal(t, []string{"snake_case"}, names(under))

	bang, err := repo.FindAllByEndsWith(ctx, "name", "g!", types.Unsorted())
	require.NoError(t, err)
	assert.Equal(t, []string{"bang!"}, names(bang))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "a!%b!_c!!", EscapeLike("a%b_c!"))
	assert.Equal(t, "plain", EscapeLike("plain"))
}
