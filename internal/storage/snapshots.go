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
	"database/sql"
	"errors"
	"time"
)

// language=SQL
// dialect=SQLite
const insertExportSnapshotSQL = `INSERT INTO export_snapshots(ts, markdown) VALUES (?, ?)`

// language=SQL
// dialect=SQLite
const selectLatestExportSnapshotSQL = `SELECT ts, markdown FROM export_snapshots ORDER BY ts DESC LIMIT 1`

// language=SQL
// dialect=SQLite
const listExportSnapshotsSQL = `SELECT ts, markdown FROM export_snapshots ORDER BY ts DESC LIMIT ?`

// language=SQL
// dialect=SQLite
const pruneExportSnapshotsSQL = `DELETE FROM export_snapshots WHERE id NOT IN (
	SELECT id FROM export_snapshots ORDER BY ts DESC LIMIT ?
)`

// ExportSnapshot is one recorded Markdown export.
type ExportSnapshot struct {
	TS       time.Time
	Markdown string
}

// SaveExportSnapshot records an exported Markdown rendering with a timestamp.
func SaveExportSnapshot(ctx context.Context, ph *ProjectHandle, markdown string, ts time.Time) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	_, err = db.ExecContext(ctx, insertExportSnapshotSQL, ts.UTC().Format(time.RFC3339Nano), markdown)
	return err
}

// LatestExportSnapshot returns the most recent export, or zero values if none.
func LatestExportSnapshot(ctx context.Context, ph *ProjectHandle) (ExportSnapshot, error) {
	if ph == nil {
		return ExportSnapshot{}, errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return ExportSnapshot{}, err
	}
	defer func() { _ = db.Close() }()
	var tsStr, md string
	err = db.QueryRowContext(ctx, selectLatestExportSnapshotSQL).Scan(&tsStr, &md)
	if errors.Is(err, sql.ErrNoRows) {
		return ExportSnapshot{}, nil
	}
	if err != nil {
		return ExportSnapshot{}, err
	}
	ts, err := time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return ExportSnapshot{Markdown: md}, nil
	}
	return ExportSnapshot{TS: ts, Markdown: md}, nil
}

// ListExportSnapshots returns up to limit most recent exports, newest first.
func ListExportSnapshots(ctx context.Context, ph *ProjectHandle, limit int) ([]ExportSnapshot, error) {
	if ph == nil {
		return nil, errors.New("nil ProjectHandle")
	}
	if limit <= 0 {
		limit = 50
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()
	rows, err := db.QueryContext(ctx, listExportSnapshotsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []ExportSnapshot
	for rows.Next() {
		var tsStr, md string
		if err := rows.Scan(&tsStr, &md); err != nil {
			return nil, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, tsStr)
		out = append(out, ExportSnapshot{TS: ts, Markdown: md})
	}
	return out, rows.Err()
}

// PruneExportSnapshots keeps at most keepLast snapshots and deletes the rest.
func PruneExportSnapshots(ctx context.Context, ph *ProjectHandle, keepLast int) (int64, error) {
	if ph == nil {
		return 0, errors.New("nil ProjectHandle")
	}
	if keepLast <= 0 {
		return 0, nil
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	res, err := db.ExecContext(ctx, pruneExportSnapshotsSQL, keepLast)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
