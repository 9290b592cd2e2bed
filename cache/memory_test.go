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

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", entry{Name: "Dino", Count: 2}, 0))

	var got entry
	found, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Name: "Dino", Count: 2}, got)

	found, err = c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, 0)
	defer c.Stop()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", 1, time.Second))
	require.NoError(t, c.Set(ctx, "default", 2, 0))

	now = now.Add(2 * time.Second)
	var v int
	found, err := c.Get(ctx, "short", &v)
	require.NoError(t, err)
	assert.False(t, found)
	found, err = c.Get(ctx, "default", &v)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, v)

	c.evictExpired()
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewMemoryCache(0, 0)
	defer c.Stop()
	ctx := context.Background()
	for _, k := range []string{"pets:1", "pets:2", "owners:1"} {
		require.NoError(t, c.Set(ctx, k, k, 0))
	}

	require.NoError(t, c.Delete(ctx, "owners:1"))
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.DeletePrefix(ctx, "pets:"))
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCacheStopIsIdempotent(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Millisecond)
	c.Stop()
	c.Stop()
}

func TestMemoryCacheRejectsUnencodable(t *testing.T) {
	c := NewMemoryCache(0, 0)
	defer c.Stop()
	assert.Error(t, c.Set(context.Background(), "ch", make(chan int), 0))
}
