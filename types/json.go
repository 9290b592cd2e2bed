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
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON implements json.Marshaler for Direction.
func (d Direction) MarshalJSON() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: invalid direction %d", ErrInvalidArgument, int(d))
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler for Direction.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type orderJSON struct {
	Property   string    `json:"property"`
	Direction  Direction `json:"direction"`
	IgnoreCase bool      `json:"ignoreCase"`
}

// MarshalJSON implements json.Marshaler for Order.
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(orderJSON{Property: o.property, Direction: o.direction, IgnoreCase: o.ignoreCase})
}

// UnmarshalJSON implements json.Unmarshaler for Order. A missing direction
// means ascending.
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw orderJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewOrder(raw.Property, raw.Direction, raw.IgnoreCase)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// MarshalJSON encodes a sort as its list of orders.
func (s Sort) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Orders())
}

// UnmarshalJSON accepts either a list of orders or {"orderBy": [...]}.
func (s *Sort) UnmarshalJSON(data []byte) error {
	orders, err := decodeOrders(data)
	if err != nil {
		return err
	}
	*s = SortOf(orders...)
	return nil
}

func decodeOrders(data []byte) ([]Order, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var orders []Order
	if data[0] == '{' {
		var wrapped struct {
			OrderBy []Order `json:"orderBy"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.OrderBy, nil
	}
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type pageableJSON struct {
	Page int             `json:"page"`
	Size int             `json:"size"`
	Sort json.RawMessage `json:"sort,omitempty"`
	// OrderBy is accepted on input only.
	OrderBy json.RawMessage `json:"orderBy,omitempty"`
}

// MarshalJSON encodes {"page", "size", "sort": [...]}.
func (p Pageable) MarshalJSON() ([]byte, error) {
	sortData, err := json.Marshal(p.sort)
	if err != nil {
		return nil, err
	}
	return json.Marshal(pageableJSON{Page: p.page, Size: p.size, Sort: sortData})
}

// UnmarshalJSON decodes a pageable, validating it like NewPageable. A page
// and size of 0 decode to the unpaged sentinel (keeping any sort).
func (p *Pageable) UnmarshalJSON(data []byte) error {
	var raw pageableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sortData := raw.Sort
	if len(sortData) == 0 {
		sortData = raw.OrderBy
	}
	orders, err := decodeOrders(sortData)
	if err != nil {
		return err
	}
	sort := SortOf(orders...)
	if raw.Page == 0 && raw.Size == 0 {
		*p = Unpaged().WithSort(sort)
		return nil
	}
	parsed, err := NewPageable(raw.Page, raw.Size, sort)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

type pageJSON[T any] struct {
	Content   []*T     `json:"content"`
	TotalSize int64    `json:"totalSize"`
	Pageable  Pageable `json:"pageable"`
}

// MarshalJSON implements json.Marshaler for Page.
func (p *Page[T]) MarshalJSON() ([]byte, error) {
	content := p.content
	if content == nil {
		content = make([]*T, 0)
	}
	return json.Marshal(pageJSON[T]{Content: content, TotalSize: p.totalSize, Pageable: p.pageable})
}

// UnmarshalJSON implements json.Unmarshaler for Page.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	var raw pageJSON[T]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Content == nil {
		raw.Content = make([]*T, 0)
	}
	p.content = raw.Content
	p.totalSize = raw.TotalSize
	p.pageable = raw.Pageable
	return nil
}
