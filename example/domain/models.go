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

import "github.com/tomoncle/hummerdata/database"

// RegisterModels adds every example model to registry. Referenced tables
// get lower priorities so they are created first.
func RegisterModels(registry database.ModelRegistry) {
	registry.Register(
		database.NewModelAdapter((*Owner)(nil), 10),
		database.NewModelAdapter((*Pet)(nil), 20),
		database.NewModelAdapter((*Author)(nil), 10),
		database.NewModelAdapter((*Book)(nil), 20),
	)
}
