/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"
	"sort"
	"strings"

	"stagescript/internal/format"
)

// sceneSeparator joins the title block and every rendered scene on export.
const sceneSeparator = "\n\n<br/>\n\n<br/>\n\n"

// Script is the aggregate root: title and subtitle, unique-name rosters of
// characters and locations, and the ordered scenes. scenes[i].Number() == i+1
// holds at all times since scenes can only be appended.
//
// A Script is owned by exactly one mutator at a time. It performs no I/O and
// no locking; a concurrent host must serialize access itself or hand a Clone
// to the second party.
type Script struct {
	title       string
	subtitle    string
	hasTitle    bool
	hasSubtitle bool
	characters  map[string]struct{}
	locations   map[string]struct{}
	scenes      []*Scene
}

// New creates an empty script.
func New() *Script {
	return &Script{
		characters: make(map[string]struct{}),
		locations:  make(map[string]struct{}),
	}
}

// SetTitle assigns the script title. No validation is performed.
func (s *Script) SetTitle(title string) {
	s.title = title
	s.hasTitle = true
}

// Title returns the title and whether it has been set.
func (s *Script) Title() (string, bool) { return s.title, s.hasTitle }

// SetSubtitle assigns the optional subtitle.
func (s *Script) SetSubtitle(subtitle string) {
	s.subtitle = subtitle
	s.hasSubtitle = true
}

// Subtitle returns the subtitle and whether it has been set.
func (s *Script) Subtitle() (string, bool) { return s.subtitle, s.hasSubtitle }

// AddCharacter inserts a character name into the roster. It reports false
// without effect when the name is already present. Names are case-sensitive.
func (s *Script) AddCharacter(name string) bool {
	if _, ok := s.characters[name]; ok {
		return false
	}
	s.characters[name] = struct{}{}
	return true
}

// AddLocation inserts a location name into the roster. It reports false
// without effect when the name is already present.
func (s *Script) AddLocation(name string) bool {
	if _, ok := s.locations[name]; ok {
		return false
	}
	s.locations[name] = struct{}{}
	return true
}

// Characters returns the character roster sorted lexicographically.
func (s *Script) Characters() []string { return sortedKeys(s.characters) }

// Locations returns the location roster sorted lexicographically.
func (s *Script) Locations() []string { return sortedKeys(s.locations) }

// NumScenes returns the current scene count.
func (s *Script) NumScenes() int { return len(s.scenes) }

// AddScene appends a new empty scene numbered len(scenes)+1.
func (s *Script) AddScene() {
	s.scenes = append(s.scenes, newScene(len(s.scenes)+1))
}

// resolveScene maps a user-facing scene number to a slice index. Zero is
// structurally meaningless. Negative numbers address from the end,
// Python-style: -1 is the last scene.
func (s *Script) resolveScene(sceneNumber int) (int, error) {
	if sceneNumber == 0 {
		return 0, fmt.Errorf("scene number 0: %w", ErrInvalidIndex)
	}
	n := sceneNumber
	if n < 0 {
		n += len(s.scenes) + 1
	}
	if n < 1 || n > len(s.scenes) {
		return 0, fmt.Errorf("scene %d of %d: %w", sceneNumber, len(s.scenes), ErrOutOfRange)
	}
	return n - 1, nil
}

// AddSection appends a section to the addressed scene, first running the
// formatter rules against a snapshot of the current rosters. The section may
// be mutated in place; callers must not rely on its pre-insertion text.
func (s *Script) AddSection(sceneNumber int, section Section) error {
	idx, err := s.resolveScene(sceneNumber)
	if err != nil {
		return err
	}
	s.formatSection(section)
	s.scenes[idx].AddSection(section)
	return nil
}

// formatSection applies the insertion-time text rules. Dialogue lines get
// terminal punctuation only; direction text additionally gets roster-name
// capitalization; inline parentheticals get their trailing punctuation
// stripped instead. Raw Markdown passes through untouched.
func (s *Script) formatSection(section Section) {
	switch v := section.(type) {
	case *StageDirection:
		v.text = format.CapitalizeNames(format.EnsureTerminalPunct(v.text), s.rosterUnion())
	case *CharacterLine:
		v.line = format.EnsureTerminalPunct(v.line)
		if v.direction != "" {
			v.direction = format.CapitalizeNames(format.TrimTerminalPunct(v.direction), s.rosterUnion())
		}
	}
}

// rosterUnion returns all known character and location names.
func (s *Script) rosterUnion() []string {
	names := make([]string, 0, len(s.characters)+len(s.locations))
	for n := range s.characters {
		names = append(names, n)
	}
	for n := range s.locations {
		names = append(names, n)
	}
	return names
}

// Scene returns a deep clone of the addressed scene. Mutating the clone never
// affects the script; use UpdateScene to write a modified scene back.
func (s *Script) Scene(sceneNumber int) (*Scene, error) {
	idx, err := s.resolveScene(sceneNumber)
	if err != nil {
		return nil, err
	}
	return s.scenes[idx].Clone(), nil
}

// SceneLen returns the section count of the addressed scene.
func (s *Script) SceneLen(sceneNumber int) (int, error) {
	idx, err := s.resolveScene(sceneNumber)
	if err != nil {
		return 0, err
	}
	return s.scenes[idx].NumSections(), nil
}

// DeleteSection removes a section by zero-based index from the addressed scene.
func (s *Script) DeleteSection(sceneNumber, sectionIndex int) error {
	idx, err := s.resolveScene(sceneNumber)
	if err != nil {
		return err
	}
	return s.scenes[idx].DeleteSection(sectionIndex)
}

// UpdateScene replaces the addressed scene with the given one. The
// replacement's own number must agree with the slot it targets. The script
// stores a clone, so the caller keeps sole ownership of the argument.
func (s *Script) UpdateScene(sceneNumber int, scene *Scene) error {
	idx, err := s.resolveScene(sceneNumber)
	if err != nil {
		return err
	}
	if scene.Number() != idx+1 {
		return fmt.Errorf("cannot set scene %d to be scene %d: %w", idx+1, scene.Number(), ErrMismatch)
	}
	s.scenes[idx] = scene.Clone()
	return nil
}

// Export renders the whole script as Markdown: the title, the subtitle when
// set, and every scene, joined by the double <br/> separator.
func (s *Script) Export() (string, error) {
	if !s.hasTitle {
		return "", fmt.Errorf("title: %w", ErrMissingField)
	}
	head := "# " + s.title
	if s.hasSubtitle {
		head += "\n\n" + s.subtitle
	}
	parts := make([]string, 0, len(s.scenes)+1)
	parts = append(parts, head)
	for _, sc := range s.scenes {
		parts = append(parts, sc.Markdown())
	}
	return strings.Join(parts, sceneSeparator), nil
}

// Clone returns a fully independent deep copy: new rosters, new scenes, new
// sections. Mutating either script never affects the other.
func (s *Script) Clone() *Script {
	c := New()
	c.title, c.hasTitle = s.title, s.hasTitle
	c.subtitle, c.hasSubtitle = s.subtitle, s.hasSubtitle
	for n := range s.characters {
		c.characters[n] = struct{}{}
	}
	for n := range s.locations {
		c.locations[n] = struct{}{}
	}
	c.scenes = make([]*Scene, len(s.scenes))
	for i, sc := range s.scenes {
		c.scenes[i] = sc.Clone()
	}
	return c
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
