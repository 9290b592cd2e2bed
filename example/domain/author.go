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

package domain

import "github.com/uptrace/bun"

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	ID       int64   `bun:"id,pk,autoincrement" json:"id"`
	Name     string  `bun:"name,notnull" json:"name"`
	Nickname *string `bun:"nickname" json:"nickname,omitempty"`
	Books    []*Book `bun:"rel:has-many,join:id=author_id" json:"books,omitempty"`
}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID       int64   `bun:"id,pk,autoincrement" json:"id"`
	Title    string  `bun:"title,notnull" json:"title"`
	Pages    int     `bun:"pages" json:"pages"`
	AuthorID int64   `bun:"author_id" json:"authorId"`
	Author   *Author `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
}
