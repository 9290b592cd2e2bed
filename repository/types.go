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

	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
type CrudRepository[T any] interface {
	// FindByID returns ErrNotFound when no row has the given primary key.
	FindByID(ctx context.Context, id any) (*T, error)

	FindAll(ctx context.Context, sort types.Sort) ([]*T, error)

	Count(ctx context.Context) (int64, error)

	ExistsByID(ctx context.Context, id any) (bool, error)

	Create(ctx context.Context, entity ...*T) error

	Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}

// PageableRepository fetches entities one page at a time.
type PageableRepository[T any] interface {
	FindPage(ctx context.Context, pageable types.Pageable) (*types.Page[T], error)

	// FindPageWhere is FindPage restricted by filter. A nil filter matches
	// every row.
	FindPageWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[T], error)

	// List returns only the content of the requested page.
	List(ctx context.Context, pageable types.Pageable) ([]*T, error)
}

// PropertyFinder queries by a single property. Properties are Go field names
// or column names of T.
type PropertyFinder[T any] interface {
	FindOneBy(ctx context.Context, property string, value any) (*T, error)
	FindAllBy(ctx context.Context, property string, value any, sort types.Sort) ([]*T, error)
	FindAllByContains(ctx context.Context, property string, fragment string, sort types.Sort) ([]*T, error)
	FindAllByStartsWith(ctx context.Context, property string, prefix string, sort types.Sort) ([]*T, error)
	FindAllByEndsWith(ctx context.Context, property string, suffix string, sort types.Sort) ([]*T, error)
	FindOneByIgnoreCase(ctx context.Context, property string, value string) (*T, error)
	CountByContains(ctx context.Context, property string, fragment string) (int64, error)
}

// TransactionRepository defines CRUD operations executed within a transaction.
type TransactionRepository[T any] interface {
	CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error
	UpsertWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error
	UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error
	DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error
}

// Repository combines CRUD, pagination, property lookups and transactional
// operations and exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	PageableRepository[T]
	PropertyFinder[T]
	TransactionRepository[T]
	Table() *schema.Table
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
