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

// QueryFilter describes a WHERE clause schema and its argument values.
type QueryFilter struct {
	Schema string
	Args   []interface{}
}

// NewQueryFilter creates a new query filter with schema and args.
func NewQueryFilter(schema string, args ...interface{}) *QueryFilter {
	return &QueryFilter{schema, args}
}

// Page is one page of results together with the total element count and the
// Pageable that produced it.
type Page[T any] struct {
	content   []*T
	totalSize int64
	pageable  Pageable
}

// NewPage builds a page. content is copied.
func NewPage[T any](content []*T, pageable Pageable, totalSize int64) *Page[T] {
	items := make([]*T, len(content))
	copy(items, content)
	return &Page[T]{content: items, totalSize: totalSize, pageable: pageable}
}

// EmptyPage returns a page without content for pageable.
func EmptyPage[T any](pageable Pageable) *Page[T] {
	return &Page[T]{content: make([]*T, 0), pageable: pageable}
}

func (p *Page[T]) Content() []*T {
	items := make([]*T, len(p.content))
	copy(items, p.content)
	return items
}

func (p *Page[T]) Pageable() Pageable { return p.pageable }

func (p *Page[T]) TotalSize() int64 { return p.totalSize }

func (p *Page[T]) NumberOfElements() int { return len(p.content) }

func (p *Page[T]) IsEmpty() bool { return len(p.content) == 0 }

func (p *Page[T]) PageNumber() int { return p.pageable.Page() }

func (p *Page[T]) Size() int { return p.pageable.Size() }

func (p *Page[T]) Offset() int64 { return p.pageable.Offset() }

// TotalPages is 1 for an unpaged result with content, 0 when empty.
func (p *Page[T]) TotalPages() int {
	size := int64(p.pageable.Size())
	if size == 0 {
		if p.totalSize > 0 {
			return 1
		}
		return 0
	}
	pages := p.totalSize / size
	if p.totalSize%size != 0 {
		pages++
	}
	return int(pages)
}

func (p *Page[T]) HasNext() bool {
	if p.pageable.IsUnpaged() {
		return false
	}
	offset := p.pageable.Offset()
	return offset < p.totalSize && p.totalSize-offset > int64(len(p.content))
}

func (p *Page[T]) HasPrevious() bool {
	return !p.pageable.IsUnpaged() && p.pageable.Page() > 0
}

// MapPage converts the content of a page, keeping its metadata.
func MapPage[T, R any](page *Page[T], fn func(*T) *R) *Page[R] {
	items := make([]*R, len(page.content))
	for i, item := range page.content {
		items[i] = fn(item)
	}
	return &Page[R]{content: items, totalSize: page.totalSize, pageable: page.pageable}
}
