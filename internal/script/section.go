/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script holds the in-memory model of a stage script: typed content
// sections, numbered scenes, and the aggregate Script with its character and
// location rosters. The model is single-owner and synchronous; Clone is the
// only isolation primitive. Rendering produces the Markdown dialect described
// in docs/markdown.md.
package script

import (
	"regexp"
	"strings"
)

// Section is one atomic block of scene content. The variant set is closed:
// RawSection, CharacterLine and StageDirection.
type Section interface {
	// Markdown renders this section. It is pure; it never mutates the section.
	Markdown() string
	// Clone returns a deep, independent copy.
	Clone() Section
}

// RawSection carries opaque Markdown that is passed through verbatim.
type RawSection struct {
	text string
}

// NewRawSection creates a raw Markdown section.
func NewRawSection(markdown string) *RawSection {
	return &RawSection{text: markdown}
}

// Text returns the stored Markdown.
func (s *RawSection) Text() string { return s.text }

func (s *RawSection) Markdown() string { return s.text }

func (s *RawSection) Clone() Section {
	c := *s
	return &c
}

// CharacterLine is a single line of dialogue, optionally preceded by an
// inline parenthetical stage direction. An empty direction means none.
type CharacterLine struct {
	character string
	line      string
	direction string
}

// NewCharacterLine creates a dialogue line for the given character.
// direction may be empty when the line has no inline parenthetical.
func NewCharacterLine(character, line, direction string) *CharacterLine {
	return &CharacterLine{character: character, line: line, direction: direction}
}

// Character returns the speaking character's name as stored.
func (s *CharacterLine) Character() string { return s.character }

// Line returns the dialogue text.
func (s *CharacterLine) Line() string { return s.line }

// Direction returns the inline stage direction, or "" when absent.
func (s *CharacterLine) Direction() string { return s.direction }

func (s *CharacterLine) Markdown() string {
	drctn := ""
	if s.direction != "" {
		drctn = "*(" + s.direction + ")*"
	}
	return "**" + strings.ToUpper(s.character) + "**:" + drctn + "\n\n" + s.line
}

func (s *CharacterLine) Clone() Section {
	c := *s
	return &c
}

// StageDirection is one or more paragraphs of standalone scene direction.
// Paragraphs are separated by a blank line in the stored text.
type StageDirection struct {
	text string
}

// NewStageDirection creates a standalone stage direction.
func NewStageDirection(text string) *StageDirection {
	return &StageDirection{text: text}
}

// Text returns the stored direction text, paragraph breaks included.
func (s *StageDirection) Text() string { return s.text }

var paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)

// Paragraphs splits the stored text on blank-line breaks.
func (s *StageDirection) Paragraphs() []string {
	return paragraphBreak.Split(s.text, -1)
}

// Markdown wraps each paragraph in its own italic parenthetical rather than
// one wrapper around the whole text.
func (s *StageDirection) Markdown() string {
	paras := s.Paragraphs()
	out := make([]string, len(paras))
	for i, p := range paras {
		out[i] = "*(" + p + ")*"
	}
	return strings.Join(out, "\n\n")
}

func (s *StageDirection) Clone() Section {
	c := *s
	return &c
}
