/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"testing"
	"time"
)

func newTestHandle(t *testing.T) *ProjectHandle {
	t.Helper()
	ph, err := InitProject(t.TempDir(), sampleDocument())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	return ph
}

func TestSaveAndLatestExportSnapshot(t *testing.T) {
	ph := newTestHandle(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := SaveExportSnapshot(ctx, ph, "# Play v1", base); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	if err := SaveExportSnapshot(ctx, ph, "# Play v2", base.Add(time.Minute)); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}
	latest, err := LatestExportSnapshot(ctx, ph)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Markdown != "# Play v2" {
		t.Fatalf("latest = %q", latest.Markdown)
	}
	if !latest.TS.Equal(base.Add(time.Minute)) {
		t.Fatalf("latest ts = %v", latest.TS)
	}
}

func TestLatestExportSnapshotEmpty(t *testing.T) {
	ph := newTestHandle(t)
	latest, err := LatestExportSnapshot(context.Background(), ph)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Markdown != "" || !latest.TS.IsZero() {
		t.Fatalf("expected zero snapshot, got %+v", latest)
	}
}

func TestListAndPruneExportSnapshots(t *testing.T) {
	ph := newTestHandle(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if err := SaveExportSnapshot(ctx, ph, "rev", base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("save snapshot %d: %v", i, err)
		}
	}
	list, err := ListExportSnapshots(ctx, ph, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("list len = %d", len(list))
	}
	if !list[0].TS.After(list[1].TS) {
		t.Fatalf("list not newest-first: %v, %v", list[0].TS, list[1].TS)
	}

	n, err := PruneExportSnapshots(ctx, ph, 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 3 {
		t.Fatalf("pruned %d rows, want 3", n)
	}
	rest, err := ListExportSnapshots(ctx, ph, 0)
	if err != nil {
		t.Fatalf("list after prune: %v", err)
	}
	if len(rest) != 2 {
		t.Fatalf("remaining = %d", len(rest))
	}
}
