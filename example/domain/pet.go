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

// Package domain holds the petstore and library models used by the example
// application.
package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type PetType string

const (
	PetTypeDog PetType = "DOG"
	PetTypeCat PetType = "CAT"
)

type Owner struct {
	bun.BaseModel `bun:"table:owners,alias:o"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"`
	Age  int    `bun:"age" json:"age"`
	Pets []*Pet `bun:"rel:has-many,join:id=owner_id" json:"pets,omitempty"`
}

type Pet struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID      uuid.UUID `bun:"id,pk,type:varchar(36)" json:"id"`
	Name    string    `bun:"name,notnull,unique" json:"name"`
	Type    PetType   `bun:"type,notnull" json:"type"`
	OwnerID int64     `bun:"owner_id,notnull" json:"ownerId"`
	Owner   *Owner    `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*Pet)(nil)

// BeforeAppendModel assigns a random id to pets inserted without one.
func (p *Pet) BeforeAppendModel(_ context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
