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
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomoncle/hummerdata/types"
)

var (
	ErrNotFound = errors.New("entity not found")

	// ErrUnknownProperty is also an ErrInvalidArgument.
	ErrUnknownProperty = fmt.Errorf("%w: unknown property", types.ErrInvalidArgument)

	ErrEmptyFields = errors.New("upsert fields cannot be empty")
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
