/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a live Script to its publishable forms: the
// Markdown document with its mirror JSON sidecar, and a paginated PDF.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	applog "stagescript/internal/log"
	"stagescript/internal/script"
	"stagescript/internal/storage"
)

// Markdown writes the script's Markdown rendering to outPath together with a
// mirror JSON sidecar regenerated from live state, updates the project
// manifest so formatter-applied mutations persist, and records the export in
// the project's snapshot history.
func Markdown(ctx context.Context, ph *storage.ProjectHandle, s *script.Script, outPath string) error {
	l := applog.WithOperation(applog.WithComponent("export"), "markdown").With(
		slog.String("out", outPath),
	)
	md, err := s.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, []byte(md+"\n"), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	doc := storage.Snapshot(s)
	sidecar := sidecarPath(outPath)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mirror document: %w", err)
	}
	if err := os.WriteFile(sidecar, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write mirror document: %w", err)
	}

	ph.Doc = doc
	if err := storage.Save(ph); err != nil {
		return fmt.Errorf("persist mirror document: %w", err)
	}
	if err := storage.SaveExportSnapshot(ctx, ph, md, time.Now()); err != nil {
		return fmt.Errorf("record export snapshot: %w", err)
	}
	l.Info("markdown exported", slog.Int("bytes", len(md)))
	return nil
}

// sidecarPath swaps a .md suffix for .json, or appends .json otherwise.
func sidecarPath(outPath string) string {
	if strings.HasSuffix(outPath, ".md") {
		return strings.TrimSuffix(outPath, ".md") + ".json"
	}
	return outPath + ".json"
}
