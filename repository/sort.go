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
	"fmt"
	"strings"

	"github.com/tomoncle/hummerdata/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// Column is a resolved property: the alias of the table that owns it (empty
// for the model's own table) and its column name.
type Column struct {
	Alias string
	Name  string
}

// expr returns the query fragment and arguments addressing the column.
func (c Column) expr() (string, []interface{}) {
	if c.Alias == "" {
		return "?TableAlias.?", []interface{}{bun.Ident(c.Name)}
	}
	return "?.?", []interface{}{bun.Ident(c.Alias), bun.Ident(c.Name)}
}

// ResolveColumn maps a property to a column of table. A property is a Go field
// name or a column name, compared case-insensitively. "rel.prop" addresses a
// column of a to-one relation and is only accepted when rel is one of joined,
// the relations the query selects with Relation.
func ResolveColumn(table *schema.Table, property string, joined ...string) (Column, error) {
	property = strings.TrimSpace(property)
	if relName, rest, ok := strings.Cut(property, "."); ok {
		rel := lookupRelation(table, relName)
		if rel == nil || !isJoined(rel, joined) || (rel.Type != schema.BelongsToRelation && rel.Type != schema.HasOneRelation) {
			return Column{}, fmt.Errorf("%w %q on %s", ErrUnknownProperty, property, table.TypeName)
		}
		field := lookupField(rel.JoinTable, rest)
		if field == nil {
			return Column{}, fmt.Errorf("%w %q on %s", ErrUnknownProperty, property, table.TypeName)
		}
		return Column{Alias: rel.Field.Name, Name: field.Name}, nil
	}
	field := lookupField(table, property)
	if field == nil {
		return Column{}, fmt.Errorf("%w %q on %s", ErrUnknownProperty, property, table.TypeName)
	}
	return Column{Name: field.Name}, nil
}

func isJoined(rel *schema.Relation, joined []string) bool {
	for _, name := range joined {
		if strings.EqualFold(name, rel.Field.GoName) || strings.EqualFold(name, rel.Field.Name) {
			return true
		}
	}
	return false
}

func lookupField(table *schema.Table, property string) *schema.Field {
	for _, f := range table.Fields {
		if strings.EqualFold(f.GoName, property) || strings.EqualFold(f.Name, property) {
			return f
		}
	}
	return nil
}

func lookupRelation(table *schema.Table, name string) *schema.Relation {
	for goName, rel := range table.Relations {
		if strings.EqualFold(goName, name) || strings.EqualFold(rel.Field.Name, name) {
			return rel
		}
	}
	return nil
}

// ApplySort appends one ORDER BY term per order of sort, in order.
// Case-insensitive orders sort by LOWER(column). joined names the relations
// q selects; orders on any other relation are rejected.
func ApplySort(q *bun.SelectQuery, table *schema.Table, sort types.Sort, joined ...string) (*bun.SelectQuery, error) {
	for _, order := range sort.Orders() {
		col, err := ResolveColumn(table, order.Property(), joined...)
		if err != nil {
			return q, err
		}
		expr, args := col.expr()
		if order.IsIgnoreCase() {
			expr = "LOWER(" + expr + ")"
		}
		q = q.OrderExpr(expr+" "+order.Direction().SQL(), args...)
	}
	return q, nil
}

// ApplyPageable sorts q and, unless pageable is unpaged, limits it to the
// requested page.
func ApplyPageable(q *bun.SelectQuery, table *schema.Table, pageable types.Pageable, joined ...string) (*bun.SelectQuery, error) {
	q, err := ApplySort(q, table, pageable.Sort(), joined...)
	if err != nil {
		return q, err
	}
	if pageable.IsUnpaged() {
		return q, nil
	}
	return q.Limit(pageable.Size()).Offset(int(pageable.Offset())), nil
}
