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

package database

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
	"github.com/uptrace/bun"
)

var silentQueries atomic.Bool

// EnableBunSqlSilent mutes the slow query hook, e.g. while migrations run.
func EnableBunSqlSilent(b bool) {
	silentQueries.Store(b)
}

var slowLabel = color.New(color.FgYellow, color.Bold).SprintFunc()

// slowQueryHook logs successful queries slower than slowTime.
type slowQueryHook struct {
	slowTime time.Duration
	logger   Logger
}

var _ bun.QueryHook = (*slowQueryHook)(nil)

func newSlowQueryHook(slowTime time.Duration, logger Logger) *slowQueryHook {
	return &slowQueryHook{slowTime: slowTime, logger: logger}
}

func (h *slowQueryHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *slowQueryHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if silentQueries.Load() || event.Err != nil || h.logger == nil {
		return
	}
	duration := time.Since(event.StartTime)
	if duration <= h.slowTime {
		return
	}
	h.logger.Warn(slowLabel("Database slow query detected"),
		"operation", event.Operation(),
		"duration", duration.Round(time.Microsecond),
		"slow_threshold", h.slowTime,
		"query", event.Query,
	)
}
