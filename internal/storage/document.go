/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage persists script documents: the JSON manifest with
// transactional writes and backups, schema validation of ingest documents,
// and a small per-project SQLite index holding export history.
package storage

import (
	"fmt"

	"stagescript/internal/script"
)

// Section record types in the document JSON.
const (
	SectionTypeLine      = "line"
	SectionTypeDirection = "drctn"
	SectionTypeRawMD     = "rawmd"
)

// SectionRecord is one typed content unit in the document JSON. Which payload
// fields are meaningful depends on Type: name/line/drctn for "line", drctn
// for "drctn", rawmd for "rawmd".
type SectionRecord struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Line  string `json:"line,omitempty"`
	Drctn string `json:"drctn,omitempty"`
	Rawmd string `json:"rawmd,omitempty"`
}

// Document is the on-disk shape of a script: produced by the editor on save,
// consumed on load, and regenerated from live Script state at export time so
// formatter-applied mutations round-trip into persistence.
type Document struct {
	Title      string            `json:"title"`
	Subtitle   string            `json:"subtitle"`
	Characters []string          `json:"characters"`
	Locations  []string          `json:"locations"`
	Scenes     [][]SectionRecord `json:"scenes"`
}

// BuildScript constructs a live Script from a document: title and subtitle,
// both rosters, then one scene per scene array with every record appended
// through Script.AddSection so the insertion-time formatter rules apply.
func BuildScript(doc Document) (*script.Script, error) {
	s := script.New()
	s.SetTitle(doc.Title)
	if doc.Subtitle != "" {
		s.SetSubtitle(doc.Subtitle)
	}
	for _, c := range doc.Characters {
		s.AddCharacter(c)
	}
	for _, l := range doc.Locations {
		s.AddLocation(l)
	}
	for i, records := range doc.Scenes {
		s.AddScene()
		for j, rec := range records {
			sec, err := sectionFromRecord(rec)
			if err != nil {
				return nil, fmt.Errorf("scene %d section %d: %w", i+1, j, err)
			}
			if err := s.AddSection(i+1, sec); err != nil {
				return nil, fmt.Errorf("scene %d section %d: %w", i+1, j, err)
			}
		}
	}
	return s, nil
}

func sectionFromRecord(rec SectionRecord) (script.Section, error) {
	switch rec.Type {
	case SectionTypeLine:
		return script.NewCharacterLine(rec.Name, rec.Line, rec.Drctn), nil
	case SectionTypeDirection:
		return script.NewStageDirection(rec.Drctn), nil
	case SectionTypeRawMD:
		return script.NewRawSection(rec.Rawmd), nil
	default:
		return nil, fmt.Errorf("unknown section type %q", rec.Type)
	}
}

// Snapshot regenerates the document from live Script state. The result
// reflects every formatter mutation applied since the script was built.
func Snapshot(s *script.Script) Document {
	title, _ := s.Title()
	subtitle, _ := s.Subtitle()
	doc := Document{
		Title:      title,
		Subtitle:   subtitle,
		Characters: s.Characters(),
		Locations:  s.Locations(),
		Scenes:     make([][]SectionRecord, 0, s.NumScenes()),
	}
	for n := 1; n <= s.NumScenes(); n++ {
		sc, err := s.Scene(n)
		if err != nil {
			// n is within [1, NumScenes] by construction
			continue
		}
		records := make([]SectionRecord, 0, sc.NumSections())
		for i := 0; i < sc.NumSections(); i++ {
			sec, err := sc.Section(i)
			if err != nil {
				continue
			}
			records = append(records, recordFromSection(sec))
		}
		doc.Scenes = append(doc.Scenes, records)
	}
	return doc
}

func recordFromSection(sec script.Section) SectionRecord {
	switch v := sec.(type) {
	case *script.CharacterLine:
		return SectionRecord{Type: SectionTypeLine, Name: v.Character(), Line: v.Line(), Drctn: v.Direction()}
	case *script.StageDirection:
		return SectionRecord{Type: SectionTypeDirection, Drctn: v.Text()}
	case *script.RawSection:
		return SectionRecord{Type: SectionTypeRawMD, Rawmd: v.Text()}
	default:
		// The variant set is closed; an unknown section is a programming error.
		panic(fmt.Sprintf("storage: unknown section variant %T", sec))
	}
}
