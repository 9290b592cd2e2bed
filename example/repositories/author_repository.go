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
	"fmt"

	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
)

var byName = types.SortOf(types.Asc("name"))

// AuthorRepository answers the author lookups of the library example.
type AuthorRepository struct {
	repository.Repository[domain.Author]
	db *bun.DB
}

func NewAuthorRepository(db *bun.DB) *AuthorRepository {
	return &AuthorRepository{Repository: repository.NewRepository[domain.Author](db), db: db}
}

func (r *AuthorRepository) FindByName(ctx context.Context, name string) (*domain.Author, error) {
	return r.FindOneBy(ctx, "name", name)
}

// FindByBooksTitle returns the author of the first book titled title.
func (r *AuthorRepository) FindByBooksTitle(ctx context.Context, title string) (*domain.Author, error) {
	books := r.db.NewSelect().Model((*domain.Book)(nil)).Column("author_id").Where("title = ?", title)
	author := new(domain.Author)
	err := r.db.NewSelect().Model(author).
		Where("?TableAlias.id IN (?)", books).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "author of %q", title)
	}
	return author, nil
}

func (r *AuthorRepository) CountByNameContains(ctx context.Context, text string) (int64, error) {
	return r.CountByContains(ctx, "name", text)
}

func (r *AuthorRepository) FindByNameStartsWith(ctx context.Context, prefix string) (*domain.Author, error) {
	authors, err := r.FindAllByStartsWith(ctx, "name", prefix, byName)
	return first(authors, err, "name starting with %q", prefix)
}

func (r *AuthorRepository) FindByNameContains(ctx context.Context, fragment string) ([]*domain.Author, error) {
	return r.FindAllByContains(ctx, "name", fragment, byName)
}

func (r *AuthorRepository) FindByNameEndsWith(ctx context.Context, suffix string) (*domain.Author, error) {
	authors, err := r.FindAllByEndsWith(ctx, "name", suffix, byName)
	return first(authors, err, "name ending with %q", suffix)
}

func (r *AuthorRepository) FindByNameIgnoreCase(ctx context.Context, name string) (*domain.Author, error) {
	return r.FindOneByIgnoreCase(ctx, "name", name)
}

// FindPageByNameContains pages through authors whose name contains fragment.
func (r *AuthorRepository) FindPageByNameContains(ctx context.Context, fragment string, pageable types.Pageable) (*types.Page[domain.Author], error) {
	var authors []*domain.Author
	q, err := repository.WhereLike(r.db.NewSelect().Model(&authors), r.Table(), "name", "%", fragment, "%")
	if err != nil {
		return nil, err
	}
	return repository.ScanPage(ctx, q, r.Table(), pageable, &authors)
}

// SearchByName loads the author with their books.
func (r *AuthorRepository) SearchByName(ctx context.Context, name string) (*domain.Author, error) {
	author := new(domain.Author)
	err := r.db.NewSelect().Model(author).
		Relation("Books").
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "author %q", name)
	}
	return author, nil
}

// ListAll loads every author with their books.
func (r *AuthorRepository) ListAll(ctx context.Context, sort types.Sort) ([]*domain.Author, error) {
	var authors []*domain.Author
	q, err := repository.ApplySort(r.db.NewSelect().Model(&authors).Relation("Books"), r.Table(), sort)
	if err != nil {
		return nil, err
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return authors, nil
}

// UpdateNickname sets or, with a nil nickname, clears the nickname.
func (r *AuthorRepository) UpdateNickname(ctx context.Context, id int64, nickname *string) error {
	res, err := r.db.NewUpdate().Model((*domain.Author)(nil)).
		Set("nickname = ?", nickname).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: author %d", repository.ErrNotFound, id)
	}
	return nil
}

func first(authors []*domain.Author, err error, format string, args ...interface{}) (*domain.Author, error) {
	if err != nil {
		return nil, err
	}
	if len(authors) == 0 {
		return nil, fmt.Errorf("%w: author with %s", repository.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return authors[0], nil
}
