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
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names used to carry a Pageable.
const (
	QueryParamPage = "page"
	QueryParamSize = "size"
	QueryParamSort = "sort"
)

const ignoreCaseToken = "ignorecase"

// ParseOrder parses "<property>[,<ASC|DESC>[,ignorecase]]". Tokens are read
// from the right, so a property may itself contain commas as long as a
// direction follows it.
func ParseOrder(token string) (Order, error) {
	parts := strings.Split(token, ",")
	ignoreCase := false
	if n := len(parts); n > 2 && strings.EqualFold(strings.TrimSpace(parts[n-1]), ignoreCaseToken) {
		ignoreCase = true
		parts = parts[:n-1]
	}
	direction := ASC
	if n := len(parts); n > 1 {
		d, err := ParseDirection(parts[n-1])
		if err != nil {
			return Order{}, err
		}
		direction = d
		parts = parts[:n-1]
	}
	return NewOrder(strings.TrimSpace(strings.Join(parts, ",")), direction, ignoreCase)
}

// ParseSort parses every sort token in order.
func ParseSort(tokens []string) (Sort, error) {
	orders := make([]Order, 0, len(tokens))
	for _, token := range tokens {
		if strings.TrimSpace(token) == "" {
			continue
		}
		o, err := ParseOrder(token)
		if err != nil {
			return Unsorted(), err
		}
		orders = append(orders, o)
	}
	return SortOf(orders...), nil
}

// QueryToken renders the order the way ParseOrder reads it.
func (o Order) QueryToken() string {
	if o.ignoreCase {
		return o.String() + "," + ignoreCaseToken
	}
	return o.String()
}

// PageableFromQuery binds page, size and sort parameters. Missing page means
// 0 and missing size means defaultSize. page=0&size=0 is the unpaged sentinel.
func PageableFromQuery(values url.Values, defaultSize int) (Pageable, error) {
	page, err := intParam(values, QueryParamPage, 0)
	if err != nil {
		return Pageable{}, err
	}
	size, err := intParam(values, QueryParamSize, defaultSize)
	if err != nil {
		return Pageable{}, err
	}
	sort, err := ParseSort(values[QueryParamSort])
	if err != nil {
		return Pageable{}, err
	}
	if page == 0 && size == 0 {
		return Unpaged().WithSort(sort), nil
	}
	return NewPageable(page, size, sort)
}

func intParam(values url.Values, name string, def int) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer: %q", ErrInvalidArgument, name, raw)
	}
	return n, nil
}

// Query encodes p as page, size and repeated sort parameters.
func (p Pageable) Query() url.Values {
	values := url.Values{}
	p.AppendQuery(values)
	return values
}

// AppendQuery sets the pagination parameters on values, replacing any that
// are already present.
func (p Pageable) AppendQuery(values url.Values) {
	values.Set(QueryParamPage, strconv.Itoa(p.page))
	values.Set(QueryParamSize, strconv.Itoa(p.size))
	values.Del(QueryParamSort)
	for _, o := range p.sort.orders {
		values.Add(QueryParamSort, o.QueryToken())
	}
}
