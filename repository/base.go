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
	"reflect"
	"strings"

	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

type baseRepositoryImpl[T any] struct {
	db *bun.DB
}

// NewRepository returns a generic repository backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

func (r *baseRepositoryImpl[T]) Table() *schema.Table {
	return r.db.Table(reflect.TypeOf((*T)(nil)).Elem())
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) valsToSlice(entity ...*T) []*T {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	return entities
}

func (r *baseRepositoryImpl[T]) pkColumn() string {
	if pks := r.Table().PKs; len(pks) > 0 {
		return pks[0].Name
	}
	return "id"
}

func (r *baseRepositoryImpl[T]) FindByID(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).
		Where("?TableAlias.? = ?", bun.Ident(r.pkColumn()), id).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) FindAll(ctx context.Context, sort types.Sort) ([]*T, error) {
	var entities []*T
	q, err := ApplySort(r.db.NewSelect().Model(&entities), r.Table(), sort)
	if err != nil {
		return nil, err
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context) (int64, error) {
	n, err := r.db.NewSelect().Model((*T)(nil)).Count(ctx)
	return int64(n), err
}

func (r *baseRepositoryImpl[T]) ExistsByID(ctx context.Context, id any) (bool, error) {
	return r.db.NewSelect().Model((*T)(nil)).
		Where("?TableAlias.? = ?", bun.Ident(r.pkColumn()), id).
		Exists(ctx)
}

func (r *baseRepositoryImpl[T]) FindPage(ctx context.Context, pageable types.Pageable) (*types.Page[T], error) {
	return r.FindPageWhere(ctx, nil, pageable)
}

func (r *baseRepositoryImpl[T]) FindPageWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[T], error) {
	var entities []*T
	q := r.db.NewSelect().Model(&entities)
	if filter != nil {
		q = q.Where(filter.Schema, filter.Args...)
	}
	return ScanPage(ctx, q, r.Table(), pageable, &entities)
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, pageable types.Pageable) ([]*T, error) {
	var entities []*T
	q, err := ApplyPageable(r.db.NewSelect().Model(&entities), r.Table(), pageable)
	if err != nil {
		return nil, err
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	entities := r.valsToSlice(entity...)
	_, err := r.db.NewInsert().Model(&entities).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, nil, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	_, err := r.db.NewDelete().Model((*T)(nil)).Where("? = ?", bun.Ident(r.pkColumn()), id).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) CreateWithTx(ctx context.Context, tx *bun.Tx, entity ...*T) error {
	entities := r.valsToSlice(entity...)
	_, err := tx.NewInsert().Model(&entities).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) UpsertWithTx(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	return r.multipleUpsert(ctx, tx, fields, duplicateKeys, entity...)
}

func (r *baseRepositoryImpl[T]) UpdateWithTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	_, err := tx.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) DeleteWithTx(ctx context.Context, tx *bun.Tx, id any) error {
	_, err := tx.NewDelete().Model((*T)(nil)).Where("? = ?", bun.Ident(r.pkColumn()), id).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) multipleUpsert(ctx context.Context, tx *bun.Tx, fields []string, duplicateKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return ErrEmptyFields
	}

	var idb bun.IDB = r.db
	if tx != nil {
		idb = tx
	}
	entities := r.valsToSlice(entity...)

	switch {
	case r.db.HasFeature(feature.InsertOnConflict):
		return r.upsertOnConflict(ctx, idb.NewInsert(), fields, duplicateKeys, entities)
	case r.db.HasFeature(feature.InsertOnDuplicateKey):
		return r.upsertOnDuplicateKey(ctx, idb.NewInsert(), fields, entities)
	default:
		return r.upsertFallback(ctx, idb, entities)
	}
}

func (r *baseRepositoryImpl[T]) upsertOnDuplicateKey(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, entities []*T) error {
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = VALUES(%s)", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("DUPLICATE KEY UPDATE " + strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertOnConflict(ctx context.Context, insertQuery *bun.InsertQuery, fields []string, duplicateKeys []string, entities []*T) error {
	if len(duplicateKeys) == 0 {
		duplicateKeys = []string{r.pkColumn()}
	}
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = EXCLUDED.%s", bun.Ident(field), bun.Ident(field)))
	}
	_, err := insertQuery.
		Model(&entities).
		On("CONFLICT (" + strings.Join(duplicateKeys, ",") + ") DO UPDATE").
		Set(strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertFallback(ctx context.Context, idb bun.IDB, entities []*T) error {
	for _, entity := range entities {
		if _, err := idb.NewInsert().Model(entity).Exec(ctx); err != nil {
			if _, updateErr := idb.NewUpdate().Model(entity).WherePK().Exec(ctx); updateErr != nil {
				return fmt.Errorf("upsert failed for entity: insert error: %v, update error: %v", err, updateErr)
			}
		}
	}
	return nil
}

// ScanPage scans the requested page into items and counts every row matched
// by q. q must have been built with Model(items). joined names the relations
// q selects, which the sort may then address as "rel.prop".
func ScanPage[T any](ctx context.Context, q *bun.SelectQuery, table *schema.Table, pageable types.Pageable, items *[]*T, joined ...string) (*types.Page[T], error) {
	total, err := scanPage(ctx, q, table, pageable, joined)
	if err != nil {
		return nil, err
	}
	return types.NewPage(*items, pageable, total), nil
}

// ScanPageInto is ScanPage for projections: rows are scanned into a fresh
// []*R instead of the query's model.
func ScanPageInto[R any](ctx context.Context, q *bun.SelectQuery, table *schema.Table, pageable types.Pageable, joined ...string) (*types.Page[R], error) {
	var items []*R
	total, err := scanPage(ctx, q, table, pageable, joined, &items)
	if err != nil {
		return nil, err
	}
	return types.NewPage(items, pageable, total), nil
}

// Count ignores ORDER BY, LIMIT and OFFSET, so the page can be applied first.
func scanPage(ctx context.Context, q *bun.SelectQuery, table *schema.Table, pageable types.Pageable, joined []string, dest ...interface{}) (int64, error) {
	q, err := ApplyPageable(q, table, pageable, joined...)
	if err != nil {
		return 0, err
	}
	total, err := q.Count(ctx)
	if err != nil || total == 0 {
		return 0, err
	}
	if err := q.Scan(ctx, dest...); err != nil {
		return 0, err
	}
	return int64(total), nil
}
