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
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a pagination or ordering value is built
// from illegal input (negative page, empty property, ...).
var ErrInvalidArgument = errors.New("invalid argument")

// Order is a single sort instruction. The zero value is not a valid Order;
// build one with NewOrder, Asc or Desc.
type Order struct {
	property   string
	direction  Direction
	ignoreCase bool
}

// NewOrder creates an order for property. It fails when property is empty or
// direction is not ASC/DESC.
func NewOrder(property string, direction Direction, ignoreCase bool) (Order, error) {
	if property == "" {
		return Order{}, fmt.Errorf("%w: order property cannot be empty", ErrInvalidArgument)
	}
	if !direction.IsValid() {
		return Order{}, fmt.Errorf("%w: invalid direction %d for property %q", ErrInvalidArgument, int(direction), property)
	}
	return Order{property: property, direction: direction, ignoreCase: ignoreCase}, nil
}

// Asc returns an ascending order for property. It panics if property is
// empty; use NewOrder for untrusted input.
func Asc(property string) Order {
	return mustOrder(property, ASC)
}

// Desc returns a descending order for property. It panics if property is
// empty; use NewOrder for untrusted input.
func Desc(property string) Order {
	return mustOrder(property, DESC)
}

func mustOrder(property string, direction Direction) Order {
	o, err := NewOrder(property, direction, false)
	if err != nil {
		panic(err)
	}
	return o
}

// IgnoreCase returns a copy of o that compares values case-insensitively.
func (o Order) IgnoreCase() Order {
	o.ignoreCase = true
	return o
}

func (o Order) Property() string { return o.property }

func (o Order) Direction() Direction { return o.direction }

func (o Order) IsIgnoreCase() bool { return o.ignoreCase }

func (o Order) IsAscending() bool { return o.direction == ASC }

func (o Order) Equal(other Order) bool { return o == other }

// String renders the order as "<property>,<DIRECTION>".
func (o Order) String() string {
	return o.property + "," + o.direction.String()
}

// Sort is an immutable, ordered list of orders. Earlier orders take
// precedence over later ones.
type Sort struct {
	orders []Order
}

var unsorted = Sort{}

// Unsorted returns the shared empty sort.
func Unsorted() Sort {
	return unsorted
}

// SortOf builds a sort from orders, keeping their order. The slice is copied.
func SortOf(orders ...Order) Sort {
	if len(orders) == 0 {
		return unsorted
	}
	cp := make([]Order, len(orders))
	copy(cp, orders)
	return Sort{orders: cp}
}

func (s Sort) IsSorted() bool { return len(s.orders) > 0 }

// Orders returns a copy of the order list.
func (s Sort) Orders() []Order {
	if len(s.orders) == 0 {
		return []Order{}
	}
	cp := make([]Order, len(s.orders))
	copy(cp, s.orders)
	return cp
}

// Order returns a new sort with order appended.
func (s Sort) Order(order Order) Sort {
	next := make([]Order, len(s.orders), len(s.orders)+1)
	copy(next, s.orders)
	return Sort{orders: append(next, order)}
}

// OrderBy returns a new sort with an ascending order for property appended.
func (s Sort) OrderBy(property string) (Sort, error) {
	return s.OrderByDirection(property, ASC)
}

// OrderByDirection returns a new sort with an order for property appended.
func (s Sort) OrderByDirection(property string, direction Direction) (Sort, error) {
	o, err := NewOrder(property, direction, false)
	if err != nil {
		return s, err
	}
	return s.Order(o), nil
}

func (s Sort) Equal(other Sort) bool {
	if len(s.orders) != len(other.orders) {
		return false
	}
	for i := range s.orders {
		if s.orders[i] != other.orders[i] {
			return false
		}
	}
	return true
}

func (s Sort) String() string {
	parts := make([]string, len(s.orders))
	for i, o := range s.orders {
		parts[i] = o.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
