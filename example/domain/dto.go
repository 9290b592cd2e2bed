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

import "github.com/google/uuid"

// NameDTO projects only the name column.
type NameDTO struct {
	Name string `bun:"name" json:"name"`
}

// EntityReference points at a related row by id.
type EntityReference struct {
	ID int64 `bun:"id" json:"id"`
}

// PetDTO is a pet with its owner reduced to a reference. Owner is read from
// the owner_id column.
type PetDTO struct {
	ID    uuid.UUID       `bun:"id" json:"id"`
	Name  string          `bun:"name" json:"name"`
	Owner EntityReference `bun:"embed:owner_" json:"owner"`
}
