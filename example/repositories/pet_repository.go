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

// Package repositories holds the example application's data access on top of
// the generic repository.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/tomoncle/hummerdata/repository"
	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
)

// PetRepository reads pets, whole or as projections.
type PetRepository struct {
	repository.Repository[domain.Pet]
	db *bun.DB
}

func NewPetRepository(db *bun.DB) *PetRepository {
	return &PetRepository{Repository: repository.NewRepository[domain.Pet](db), db: db}
}

// List returns the names of the pets on the requested page. Unlike
// QueryAll it does not count.
func (r *PetRepository) List(ctx context.Context, pageable types.Pageable) ([]*domain.NameDTO, error) {
	q, err := repository.ApplyPageable(r.names(), r.Table(), pageable)
	if err != nil {
		return nil, err
	}
	var names []*domain.NameDTO
	if err := q.Scan(ctx, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// QueryAll returns one page of pet names with the total count.
func (r *PetRepository) QueryAll(ctx context.Context, pageable types.Pageable) (*types.Page[domain.NameDTO], error) {
	return repository.ScanPageInto[domain.NameDTO](ctx, r.names(), r.Table(), pageable)
}

// QueryAllWhere is QueryAll restricted by filter.
func (r *PetRepository) QueryAllWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[domain.NameDTO], error) {
	q := r.names()
	if filter != nil {
		q = q.Where(filter.Schema, filter.Args...)
	}
	return repository.ScanPageInto[domain.NameDTO](ctx, q, r.Table(), pageable)
}

func (r *PetRepository) names() *bun.SelectQuery {
	return r.db.NewSelect().Model((*domain.Pet)(nil)).Column("name")
}

// FindByName loads the pet together with its owner.
func (r *PetRepository) FindByName(ctx context.Context, name string) (*domain.Pet, error) {
	pet := new(domain.Pet)
	err := r.db.NewSelect().Model(pet).
		Relation("Owner").
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "pet %q", name)
	}
	return pet, nil
}

func (r *PetRepository) GetByName(ctx context.Context, name string) (*domain.PetDTO, error) {
	return r.getDTO(ctx, "?TableAlias.name = ?", name)
}

func (r *PetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.PetDTO, error) {
	return r.getDTO(ctx, "?TableAlias.id = ?", id)
}

func (r *PetRepository) getDTO(ctx context.Context, where string, arg interface{}) (*domain.PetDTO, error) {
	dto := new(domain.PetDTO)
	err := r.db.NewSelect().Model((*domain.Pet)(nil)).
		Column("id", "name", "owner_id").
		Where(where, arg).
		Limit(1).
		Scan(ctx, dto)
	if err != nil {
		return nil, notFound(err, "pet %v", arg)
	}
	return dto, nil
}

// Names adapts the name projection to a PageableRepository so it can be
// decorated, e.g. by repository.NewCachedPageRepository.
func (r *PetRepository) Names() repository.PageableRepository[domain.NameDTO] {
	return petNames{r}
}

type petNames struct{ r *PetRepository }

func (n petNames) FindPage(ctx context.Context, pageable types.Pageable) (*types.Page[domain.NameDTO], error) {
	return n.r.QueryAll(ctx, pageable)
}

func (n petNames) FindPageWhere(ctx context.Context, filter *types.QueryFilter, pageable types.Pageable) (*types.Page[domain.NameDTO], error) {
	return n.r.QueryAllWhere(ctx, filter, pageable)
}

func (n petNames) List(ctx context.Context, pageable types.Pageable) ([]*domain.NameDTO, error) {
	return n.r.List(ctx, pageable)
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, fmt.Sprintf(format, args...))
	}
	return err
}
