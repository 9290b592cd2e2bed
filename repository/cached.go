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
	"time"

	"github.com/tomoncle/hummerdata/cache"
	"github.com/tomoncle/hummerdata/types"
	"github.com/tomoncle/hummerdata/utils"
)

var log = utils.NewLogger("REPOSITORY")

// CachedPageRepository serves FindPage and List from a cache. Writes made
// through other repositories are not observed until Invalidate is called or
// the entries expire.
type CachedPageRepository[T any] struct {
	PageableRepository[T]
	cache     cache.Cache
	namespace string
	ttl       time.Duration
}

// NewCachedPageRepository wraps repo. namespace prefixes every cache key and
// should be unique per entity type.
func NewCachedPageRepository[T any](repo PageableRepository[T], c cache.Cache, namespace string, ttl time.Duration) *CachedPageRepository[T] {
	return &CachedPageRepository[T]{PageableRepository: repo, cache: c, namespace: namespace, ttl: ttl}
}

// key includes ignore-case flags, which Pageable.String omits.
func (r *CachedPageRepository[T]) key(pageable types.Pageable) string {
	return r.namespace + ":" + pageable.Query().Encode()
}

// FindPage reads through the cache. Cache failures are logged and the page
// is loaded from the wrapped repository.
func (r *CachedPageRepository[T]) FindPage(ctx context.Context, pageable types.Pageable) (*types.Page[T], error) {
	key := r.key(pageable)
	cached := types.EmptyPage[T](pageable)
	found, err := r.cache.Get(ctx, key, cached)
	if err != nil {
		log.WithError(err).WithField("key", key).Warn("cache read failed")
	} else if found {
		return cached, nil
	}
	page, err := r.PageableRepository.FindPage(ctx, pageable)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, page, r.ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
	return page, nil
}

func (r *CachedPageRepository[T]) List(ctx context.Context, pageable types.Pageable) ([]*T, error) {
	page, err := r.FindPage(ctx, pageable)
	if err != nil {
		return nil, err
	}
	return page.Content(), nil
}

// Invalidate drops every cached page of this repository.
func (r *CachedPageRepository[T]) Invalidate(ctx context.Context) error {
	return r.cache.DeletePrefix(ctx, r.namespace+":")
}
