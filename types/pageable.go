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

package types

import (
	"fmt"
	"math"
)

// DefaultPageSize is the size used by PageableOf.
const DefaultPageSize = 10

// Pageable describes which page of results to fetch and how to sort them.
// Pages are zero based. Values are immutable; every derivation returns a new
// Pageable.
type Pageable struct {
	page int
	size int
	sort Sort
}

var unpaged = Pageable{}

// Unpaged returns the sentinel meaning "no pagination": page 0, size 0.
func Unpaged() Pageable {
	return unpaged
}

// PageableOf returns the given page with DefaultPageSize, unsorted.
func PageableOf(page int) (Pageable, error) {
	return NewPageable(page, DefaultPageSize, Unsorted())
}

// PageableOfSize returns the given page and size, unsorted.
func PageableOfSize(page, size int) (Pageable, error) {
	return NewPageable(page, size, Unsorted())
}

// NewPageable validates page >= 0 and size >= 1.
func NewPageable(page, size int, sort Sort) (Pageable, error) {
	if page < 0 {
		return Pageable{}, fmt.Errorf("%w: page index cannot be negative: %d", ErrInvalidArgument, page)
	}
	if size < 1 {
		return Pageable{}, fmt.Errorf("%w: page size cannot be less than 1: %d", ErrInvalidArgument, size)
	}
	return Pageable{page: page, size: size, sort: sort}, nil
}

func (p Pageable) Page() int { return p.page }

func (p Pageable) Size() int { return p.size }

func (p Pageable) Sort() Sort { return p.sort }

func (p Pageable) Orders() []Order { return p.sort.Orders() }

func (p Pageable) IsSorted() bool { return p.sort.IsSorted() }

// IsUnpaged reports whether p carries no page limit.
func (p Pageable) IsUnpaged() bool { return p.size == 0 }

// Offset is page*size computed in 64 bits. Products beyond int64 saturate at
// math.MaxInt64.
func (p Pageable) Offset() int64 {
	page, size := int64(p.page), int64(p.size)
	if page != 0 && size > math.MaxInt64/page {
		return math.MaxInt64
	}
	return page * size
}

// Next moves one page forward. If the page number overflows the result
// restarts at page 0.
func (p Pageable) Next() Pageable {
	if p.IsUnpaged() {
		return p
	}
	next := p.page + 1
	if next < 0 {
		next = 0
	}
	return Pageable{page: next, size: p.size, sort: p.sort}
}

// Previous subtracts the page size (not 1) from the page number, clamping at
// page 0.
func (p Pageable) Previous() Pageable {
	if p.IsUnpaged() {
		return p
	}
	prev := p.page - p.size
	if prev < 0 {
		prev = 0
	}
	return Pageable{page: prev, size: p.size, sort: p.sort}
}

// Order returns a copy of p with order appended to its sort.
func (p Pageable) Order(order Order) Pageable {
	return p.withSort(p.sort.Order(order))
}

// OrderBy returns a copy of p ordered ascending by property.
func (p Pageable) OrderBy(property string) (Pageable, error) {
	s, err := p.sort.OrderBy(property)
	if err != nil {
		return p, err
	}
	return p.withSort(s), nil
}

// OrderByDirection returns a copy of p ordered by property in direction.
func (p Pageable) OrderByDirection(property string, direction Direction) (Pageable, error) {
	s, err := p.sort.OrderByDirection(property, direction)
	if err != nil {
		return p, err
	}
	return p.withSort(s), nil
}

// WithSort replaces the sort, keeping page and size.
func (p Pageable) WithSort(sort Sort) Pageable {
	return p.withSort(sort)
}

func (p Pageable) withSort(sort Sort) Pageable {
	return Pageable{page: p.page, size: p.size, sort: sort}
}

func (p Pageable) Equal(other Pageable) bool {
	return p.page == other.page && p.size == other.size && p.sort.Equal(other.sort)
}

func (p Pageable) String() string {
	return fmt.Sprintf("Pageable(size=%d, page=%d, sort=%s)", p.size, p.page, p.sort)
}
