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
	"fmt"
	"testing"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomoncle/hummerdata/types"
)

// Walking every page with Next visits each row exactly once.
func TestWalkPages(t *testing.T) {
	repo := NewRepository[author](newTestDB(t))
	generated := make([]string, 23)
	for i := range generated {
		generated[i] = fmt.Sprintf("%s-%02d", randomdata.SillyName(), i)
	}
	seedAuthors(t, repo, generated...)
	ctx := context.Background()

	seen := map[int64]int{}
	pageable := mustPageable(t, 0, 5, types.Asc("id"))
	pages := 0
	for {
		page, err := repo.FindPage(ctx, pageable)
		require.NoError(t, err)
		assert.EqualValues(t, 23, page.TotalSize())
		for _, a := range page.Content() {
			seen[a.ID]++
		}
		pages++
		if !page.HasNext() {
			break
		}
		pageable = pageable.Next()
	}

	assert.Equal(t, 5, pages)
	assert.Len(t, seen, 23)
	for id, n := range seen {
		assert.Equal(t, 1, n, "author %d", id)
	}
}
