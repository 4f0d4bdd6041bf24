/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"errors"
	"testing"
)

func TestSceneMarkdownJoinsSectionsWithBreaks(t *testing.T) {
	sc := newScene(3)
	sc.AddSection(NewRawSection("Lights up."))
	sc.AddSection(NewStageDirection("A door opens."))
	want := "## Scene 3\nLights up.\n\n<br/>\n\n*(A door opens.)*"
	if got := sc.Markdown(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSceneSectionBounds(t *testing.T) {
	sc := newScene(1)
	sc.AddSection(NewRawSection("only"))
	if _, err := sc.Section(0); err != nil {
		t.Fatalf("valid index failed: %v", err)
	}
	for _, idx := range []int{-1, 1, 5} {
		if _, err := sc.Section(idx); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("Section(%d): expected ErrOutOfRange, got %v", idx, err)
		}
		if err := sc.DeleteSection(idx); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("DeleteSection(%d): expected ErrOutOfRange, got %v", idx, err)
		}
	}
}

func TestSceneDeleteSectionKeepsOrder(t *testing.T) {
	sc := newScene(1)
	sc.AddSection(NewRawSection("a"))
	sc.AddSection(NewRawSection("b"))
	sc.AddSection(NewRawSection("c"))
	if err := sc.DeleteSection(1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if sc.NumSections() != 2 {
		t.Fatalf("expected 2 sections, got %d", sc.NumSections())
	}
	second, err := sc.Section(1)
	if err != nil {
		t.Fatalf("section 1: %v", err)
	}
	if second.Markdown() != "c" {
		t.Fatalf("expected remaining section c, got %q", second.Markdown())
	}
}

func TestSceneCloneIsolation(t *testing.T) {
	src := newScene(2)
	src.AddSection(NewRawSection("original"))
	cl := src.Clone()
	cl.AddSection(NewRawSection("extra"))
	if src.NumSections() != 1 {
		t.Fatalf("mutating clone changed source: %d sections", src.NumSections())
	}
	if cl.Number() != 2 {
		t.Fatalf("clone lost scene number: %d", cl.Number())
	}
}
