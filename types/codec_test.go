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
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageableQueryRoundTrip(t *testing.T) {
	cases := []Pageable{
		mustPageable(t, 0, 10),
		mustPageable(t, 3, 25, Desc("name"), Asc("age").IgnoreCase()),
		Unpaged(),
		Unpaged().Order(Desc("created")),
		mustPageable(t, 1, 5, orderOf(t, "a,b", ASC, false), orderOf(t, "x,DESC", DESC, true)),
	}
	for _, p := range cases {
		encoded := p.Query().Encode()
		values, err := url.ParseQuery(encoded)
		require.NoError(t, err)

		decoded, err := PageableFromQuery(values, DefaultPageSize)
		require.NoError(t, err, encoded)
		assert.True(t, p.Equal(decoded), "%s != %s", p, decoded)
	}
}

func TestPageableQueryEncoding(t *testing.T) {
	p := mustPageable(t, 1, 1, Desc("name"))
	assert.Equal(t, "page=1&size=1&sort=name%2CDESC", p.Query().Encode())
}

func TestPageableFromQueryDefaults(t *testing.T) {
	p, err := PageableFromQuery(url.Values{}, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Page())
	assert.Equal(t, 20, p.Size())

	p, err = PageableFromQuery(url.Values{"sort": {"name", "age,desc"}}, 20)
	require.NoError(t, err)
	assert.Equal(t, []Order{Asc("name"), Desc("age")}, p.Orders())
}

func TestPageableFromQueryRejectsInvalid(t *testing.T) {
	bad := []url.Values{
		{"page": {"-1"}},
		{"size": {"0"}, "page": {"2"}},
		{"page": {"abc"}},
		{"size": {"1.5"}},
		{"sort": {",DESC"}},
		{"sort": {"name,UP"}},
		{"sort": {"name,ASC,loud"}},
		{"sort": {"name,ASC,ignorecase,more"}},
	}
	for _, values := range bad {
		_, err := PageableFromQuery(values, DefaultPageSize)
		assert.ErrorIs(t, err, ErrInvalidArgument, values.Encode())
	}
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("name,desc,IgnoreCase")
	require.NoError(t, err)
	assert.Equal(t, Desc("name").IgnoreCase(), o)
	assert.Equal(t, "name,DESC,ignorecase", o.QueryToken())

	o, err = ParseOrder("a,b,ASC")
	require.NoError(t, err)
	assert.Equal(t, Asc("a,b"), o)

	o, err = ParseOrder("a,ignorecase,DESC,ignorecase")
	require.NoError(t, err)
	assert.Equal(t, Desc("a,ignorecase").IgnoreCase(), o)
}

func orderOf(t *testing.T, property string, direction Direction, ignoreCase bool) Order {
	t.Helper()
	o, err := NewOrder(property, direction, ignoreCase)
	require.NoError(t, err)
	return o
}

func TestPageableJSONRoundTrip(t *testing.T) {
	cases := []Pageable{
		mustPageable(t, 2, 15, Desc("name").IgnoreCase(), Asc("id")),
		mustPageable(t, 0, 1),
		Unpaged(),
	}
	for _, p := range cases {
		data, err := json.Marshal(p)
		require.NoError(t, err)

		var decoded Pageable
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.True(t, p.Equal(decoded), "%s != %s (%s)", p, decoded, data)
	}
}

func TestPageableJSONShape(t *testing.T) {
	data, err := json.Marshal(mustPageable(t, 1, 5, Desc("name")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1,"size":5,"sort":[{"property":"name","direction":"DESC","ignoreCase":false}]}`, string(data))
}

func TestPageableJSONAlternateSortShapes(t *testing.T) {
	want := mustPageable(t, 1, 5, Desc("name"), Asc("age"))
	inputs := []string{
		`{"page":1,"size":5,"sort":{"orderBy":[{"property":"name","direction":"desc"},{"property":"age"}]}}`,
		`{"page":1,"size":5,"orderBy":[{"property":"name","direction":"DESC"},{"property":"age","direction":"ASC"}]}`,
	}
	for _, in := range inputs {
		var p Pageable
		require.NoError(t, json.Unmarshal([]byte(in), &p), in)
		assert.True(t, want.Equal(p), in)
	}
}

func TestPageableJSONRejectsInvalid(t *testing.T) {
	inputs := []string{
		`{"page":-1,"size":5}`,
		`{"page":1,"size":0}`,
		`{"page":0,"size":5,"sort":[{"property":""}]}`,
		`{"page":0,"size":5,"sort":[{"property":"a","direction":"up"}]}`,
	}
	for _, in := range inputs {
		var p Pageable
		assert.ErrorIs(t, json.Unmarshal([]byte(in), &p), ErrInvalidArgument, in)
	}
}

type named struct {
	Name string `json:"name"`
}

func TestPageJSONRoundTrip(t *testing.T) {
	page := NewPage([]*named{{Name: "Dino"}, {Name: "Baby P"}}, mustPageable(t, 0, 2, Asc("name")), 3)

	data, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded Page[named]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, int64(3), decoded.TotalSize())
	assert.Equal(t, 2, decoded.NumberOfElements())
	assert.Equal(t, "Dino", decoded.Content()[0].Name)
	assert.True(t, page.Pageable().Equal(decoded.Pageable()))
}
