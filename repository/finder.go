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
	"strings"

	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// likeEscape is the LIKE escape character. '\' is avoided because MySQL
// treats it as a string escape.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// EscapeLike quotes LIKE wildcards in s.
func EscapeLike(s string) string {
	return likeReplacer.Replace(s)
}

// WhereEqual adds "column = value".
func WhereEqual(q *bun.SelectQuery, table *schema.Table, property string, value any) (*bun.SelectQuery, error) {
	col, err := ResolveColumn(table, property)
	if err != nil {
		return q, err
	}
	expr, args := col.expr()
	return q.Where(expr+" = ?", append(args, value)...), nil
}

// WhereEqualFold adds a case-insensitive equality on a text column.
func WhereEqualFold(q *bun.SelectQuery, table *schema.Table, property string, value string) (*bun.SelectQuery, error) {
	col, err := ResolveColumn(table, property)
	if err != nil {
		return q, err
	}
	expr, args := col.expr()
	return q.Where("LOWER("+expr+") = LOWER(?)", append(args, value)...), nil
}

// WhereLike adds "column LIKE pattern", where pattern is built from prefix,
// the escaped fragment and suffix.
func WhereLike(q *bun.SelectQuery, table *schema.Table, property, prefix, fragment, suffix string) (*bun.SelectQuery, error) {
	col, err := ResolveColumn(table, property)
	if err != nil {
		return q, err
	}
	expr, args := col.expr()
	pattern := prefix + EscapeLike(fragment) + suffix
	return q.Where(expr+" LIKE ? ESCAPE '"+likeEscape+"'", append(args, pattern)...), nil
}

func (r *baseRepositoryImpl[T]) FindOneBy(ctx context.Context, property string, value any) (*T, error) {
	var entity T
	q, err := WhereEqual(r.db.NewSelect().Model(&entity), r.Table(), property, value)
	if err != nil {
		return nil, err
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) FindAllBy(ctx context.Context, property string, value any, sort types.Sort) ([]*T, error) {
	var entities []*T
	q, err := WhereEqual(r.db.NewSelect().Model(&entities), r.Table(), property, value)
	if err != nil {
		return nil, err
	}
	return r.scanSorted(ctx, q, sort, &entities)
}

func (r *baseRepositoryImpl[T]) FindAllByContains(ctx context.Context, property string, fragment string, sort types.Sort) ([]*T, error) {
	return r.findLike(ctx, property, "%", fragment, "%", sort)
}

func (r *baseRepositoryImpl[T]) FindAllByStartsWith(ctx context.Context, property string, prefix string, sort types.Sort) ([]*T, error) {
	return r.findLike(ctx, property, "", prefix, "%", sort)
}

func (r *baseRepositoryImpl[T]) FindAllByEndsWith(ctx context.Context, property string, suffix string, sort types.Sort) ([]*T, error) {
	return r.findLike(ctx, property, "%", suffix, "", sort)
}

func (r *baseRepositoryImpl[T]) FindOneByIgnoreCase(ctx context.Context, property string, value string) (*T, error) {
	var entity T
	q, err := WhereEqualFold(r.db.NewSelect().Model(&entity), r.Table(), property, value)
	if err != nil {
		return nil, err
	}
	if err := q.Limit(1).Scan(ctx); err != nil {
		return nil, notFound(err)
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) CountByContains(ctx context.Context, property string, fragment string) (int64, error) {
	q, err := WhereLike(r.db.NewSelect().Model((*T)(nil)), r.Table(), property, "%", fragment, "%")
	if err != nil {
		return 0, err
	}
	n, err := q.Count(ctx)
	return int64(n), err
}

func (r *baseRepositoryImpl[T]) findLike(ctx context.Context, property, prefix, fragment, suffix string, sort types.Sort) ([]*T, error) {
	var entities []*T
	q, err := WhereLike(r.db.NewSelect().Model(&entities), r.Table(), property, prefix, fragment, suffix)
	if err != nil {
		return nil, err
	}
	return r.scanSorted(ctx, q, sort, &entities)
}

func (r *baseRepositoryImpl[T]) scanSorted(ctx context.Context, q *bun.SelectQuery, sort types.Sort, entities *[]*T) ([]*T, error) {
	q, err := ApplySort(q, r.Table(), sort)
	if err != nil {
		return nil, err
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return *entities, nil
}
