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

// Package hummerdata provides Pageable-driven data access on top of Bun: a
// generic Service bound to the process-wide database, backed by the
// repository package.
package hummerdata

import (
	"context"
	"errors"
	"sync"

	"github.com/tomoncle/hummerdata/database"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
)

// ErrNotInitialized is returned by a Service used before database.InitDB.
var ErrNotInitialized = errors.New("database not initialized")

type Service[T any] interface {
	// Get returns a single entity by its identifier.
	Get(ctx context.Context, id any) (*T, error)

	// All returns all entities in sort order.
	All(ctx context.Context, sort types.Sort) ([]*T, error)

	// List returns the entities of one page, without counting.
	List(ctx context.Context, pageable types.Pageable) ([]*T, error)

	// Page returns one page of entities with the total count.
	Page(ctx context.Context, pageable types.Pageable) (*types.Page[T], error)

	// PageWhere is Page restricted by filter.
	PageWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[T], error)

	// Query executes a raw query and maps the results to entities.
	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	Count(ctx context.Context) (int64, error)

	Exists(ctx context.Context, id any) (bool, error)

	// Update modifies an existing entity.
	Update(ctx context.Context, model *T) error

	// Delete removes an entity by its identifier.
	Delete(ctx context.Context, id any) error

	// Save inserts one or more new entities.
	Save(ctx context.Context, model ...*T) error

	// SaveOrUpdate upserts entities based on fields and duplicate keys.
	SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, model ...*T) error

	SaveWithTx(ctx context.Context, tx *bun.Tx, model ...*T) error

	SaveOrUpdateWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, model ...*T) error

	UpdateWithTx(ctx context.Context, tx *bun.Tx, model *T) error

	DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error

	// SelectBuilder returns a Bun select query builder. The builders panic
	// with ErrNotInitialized before the database is ready.
	SelectBuilder() *bun.SelectQuery

	InsertBuilder() *bun.InsertQuery

	UpdateBuilder() *bun.UpdateQuery

	DeleteBuilder() *bun.DeleteQuery
}

type baseServiceImpl[T any] struct {
	mu   sync.Mutex
	db   *bun.DB
	repo repository.Repository[T]
}

// NewService returns a Service bound on first use to database.GetDB().
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

// NewServiceWithDB returns a Service using db instead of the global
// connection.
func NewServiceWithDB[T any](db *bun.DB) Service[T] {
	return &baseServiceImpl[T]{db: db, repo: repository.NewRepository[T](db)}
}

func (s *baseServiceImpl[T]) baseRepo() (repository.Repository[T], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo != nil {
		return s.repo, nil
	}
	db := database.GetDB()
	if db == nil {
		return nil, ErrNotInitialized
	}
	s.db, s.repo = db, repository.NewRepository[T](db)
	return s.repo, nil
}

func (s *baseServiceImpl[T]) mustRepo() repository.Repository[T] {
	repo, err := s.baseRepo()
	if err != nil {
		panic(err)
	}
	return repo
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id any) (*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}

func (s *baseServiceImpl[T]) All(ctx context.Context, sort types.Sort) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FindAll(ctx, sort)
}

func (s *baseServiceImpl[T]) List(ctx context.Context, pageable types.Pageable) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, pageable)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, pageable types.Pageable) (*types.Page[T], error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FindPage(ctx, pageable)
}

func (s *baseServiceImpl[T]) PageWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[T], error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.FindPageWhere(ctx, filter, pageable)
}

func (s *baseServiceImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	if _, err := s.baseRepo(); err != nil {
		return nil, err
	}
	var entities []*T
	if err := s.db.NewRaw(query, args...).Scan(ctx, &entities); err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *baseServiceImpl[T]) Count(ctx context.Context) (int64, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx)
}

func (s *baseServiceImpl[T]) Exists(ctx context.Context, id any) (bool, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return false, err
	}
	return repo.ExistsByID(ctx, id)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, model *T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Update(ctx, model)
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, id any) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, model ...*T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Create(ctx, model...)
}

func (s *baseServiceImpl[T]) SaveOrUpdate(ctx context.Context, fields []string, duplicateKeys []string, model ...*T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.Upsert(ctx, fields, duplicateKeys, model...)
}

func (s *baseServiceImpl[T]) SaveWithTx(ctx context.Context, tx *bun.Tx, model ...*T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.CreateWithTx(ctx, tx, model...)
}

func (s *baseServiceImpl[T]) SaveOrUpdateWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, model ...*T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.UpsertWithTx(ctx, tx, fields, duplicateKeys, model...)
}

func (s *baseServiceImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, model *T) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.UpdateWithTx(ctx, tx, model)
}

func (s *baseServiceImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	repo, err := s.baseRepo()
	if err != nil {
		return err
	}
	return repo.DeleteWithTx(ctx, tx, id)
}

func (s *baseServiceImpl[T]) SelectBuilder() *bun.SelectQuery {
	return s.mustRepo().NewSelect()
}

func (s *baseServiceImpl[T]) InsertBuilder() *bun.InsertQuery {
	return s.mustRepo().NewInsert()
}

func (s *baseServiceImpl[T]) UpdateBuilder() *bun.UpdateQuery {
	return s.mustRepo().NewUpdate()
}

func (s *baseServiceImpl[T]) DeleteBuilder() *bun.DeleteQuery {
	return s.mustRepo().NewDelete()
}
